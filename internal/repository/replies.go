package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/hostel-service/internal/domain"
)

// RepliesRepository stores the single reply a rating may carry.
type RepliesRepository struct {
	pool *pgxpool.Pool
}

const replyColumns = `id, rating_id, user_id, reply_text, created_at`

// Create inserts a reply. A second reply for the same rating yields ErrDuplicate.
func (r *RepliesRepository) Create(ctx context.Context, ratingID, userID int64, text string) (domain.Reply, error) {
	query := fmt.Sprintf(`
        INSERT INTO replies (rating_id, user_id, reply_text)
        VALUES ($1, $2, $3)
        RETURNING %s
    `, replyColumns)

	reply, err := scanReply(r.pool.QueryRow(ctx, query, ratingID, userID, text))
	if err != nil {
		return domain.Reply{}, translate(err)
	}
	return reply, nil
}

// GetByRating fetches the reply attached to a rating.
func (r *RepliesRepository) GetByRating(ctx context.Context, ratingID int64) (domain.Reply, error) {
	query := fmt.Sprintf(`SELECT %s FROM replies WHERE rating_id = $1`, replyColumns)
	reply, err := scanReply(r.pool.QueryRow(ctx, query, ratingID))
	if err != nil {
		return domain.Reply{}, translate(err)
	}
	return reply, nil
}

// Delete permanently removes a reply by id.
func (r *RepliesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReply(row pgx.Row) (domain.Reply, error) {
	var reply domain.Reply
	err := row.Scan(&reply.ID, &reply.RatingID, &reply.UserID, &reply.Text, &reply.CreatedAt)
	return reply, err
}
