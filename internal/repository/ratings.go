package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/hostel-service/internal/domain"
)

// RatingsRepository provides helpers for hostel ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

const ratingColumns = `
    id,
    hostel_id,
    user_id,
    cleanliness_rating,
    food_quality_rating,
    safety_rating,
    location_rating,
    affordability_rating,
    review_text,
    created_at,
    updated_at
`

// overallExpr is the per-row mean of the five criteria.
const overallExpr = `(cleanliness_rating + food_quality_rating + safety_rating + location_rating + affordability_rating) / 5.0`

// RatingCreateParams captures the payload required to insert a rating.
type RatingCreateParams struct {
	HostelID   int64
	UserID     int64
	Criteria   domain.Criteria
	ReviewText *string
}

// Create inserts a rating. A second rating for the same (hostel, user) pair
// is rejected by the unique constraint and yields ErrDuplicate.
func (r *RatingsRepository) Create(ctx context.Context, params RatingCreateParams) (domain.Rating, error) {
	query := fmt.Sprintf(`
        INSERT INTO ratings (
            hostel_id, user_id,
            cleanliness_rating, food_quality_rating, safety_rating,
            location_rating, affordability_rating, review_text
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING %s
    `, ratingColumns)

	c := params.Criteria
	rating, err := scanRating(r.pool.QueryRow(ctx, query,
		params.HostelID,
		params.UserID,
		c.Cleanliness,
		c.FoodQuality,
		c.Safety,
		c.Location,
		c.Affordability,
		params.ReviewText,
	))
	if err != nil {
		return domain.Rating{}, translate(err)
	}
	return rating, nil
}

// Get fetches a rating by id.
func (r *RatingsRepository) Get(ctx context.Context, id int64) (domain.Rating, error) {
	query := fmt.Sprintf(`SELECT %s FROM ratings WHERE id = $1`, ratingColumns)
	rating, err := scanRating(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Rating{}, translate(err)
	}
	return rating, nil
}

// Exists reports whether the user already rated the hostel.
func (r *RatingsRepository) Exists(ctx context.Context, hostelID, userID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM ratings WHERE hostel_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, hostelID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check rating: %w", err)
	}
	return exists, nil
}

// ListByHostel returns every rating of a hostel. No order is guaranteed.
func (r *RatingsRepository) ListByHostel(ctx context.Context, hostelID int64) ([]domain.Rating, error) {
	query := fmt.Sprintf(`SELECT %s FROM ratings WHERE hostel_id = $1`, ratingColumns)
	rows, err := r.pool.Query(ctx, query, hostelID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]domain.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// Aggregate returns the mean overall rating and count for a hostel.
func (r *RatingsRepository) Aggregate(ctx context.Context, hostelID int64) (domain.RatingAggregate, error) {
	query := fmt.Sprintf(`
        SELECT COALESCE(AVG(%s), 0)::float8 AS average,
               COUNT(*)::int8 AS count
        FROM ratings
        WHERE hostel_id = $1
    `, overallExpr)

	var agg domain.RatingAggregate
	if err := r.pool.QueryRow(ctx, query, hostelID).Scan(&agg.Average, &agg.Count); err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	return agg, nil
}

// GlobalAggregate returns the mean overall rating and count across all hostels.
func (r *RatingsRepository) GlobalAggregate(ctx context.Context) (domain.RatingAggregate, error) {
	query := fmt.Sprintf(`
        SELECT COALESCE(AVG(%s), 0)::float8 AS average,
               COUNT(*)::int8 AS count
        FROM ratings
    `, overallExpr)

	var agg domain.RatingAggregate
	if err := r.pool.QueryRow(ctx, query).Scan(&agg.Average, &agg.Count); err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("aggregate global ratings: %w", err)
	}
	return agg, nil
}

func scanRating(row pgx.Row) (domain.Rating, error) {
	var (
		rating                       domain.Rating
		clean, food, safe, loc, cost int16
	)
	err := row.Scan(
		&rating.ID,
		&rating.HostelID,
		&rating.UserID,
		&clean,
		&food,
		&safe,
		&loc,
		&cost,
		&rating.ReviewText,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		return domain.Rating{}, err
	}
	rating.Criteria = domain.Criteria{
		Cleanliness:   int(clean),
		FoodQuality:   int(food),
		Safety:        int(safe),
		Location:      int(loc),
		Affordability: int(cost),
	}
	return rating, nil
}
