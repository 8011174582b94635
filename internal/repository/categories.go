package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/hostel-service/internal/domain"
)

// CategoriesRepository provides persistence helpers for categories.
type CategoriesRepository struct {
	pool *pgxpool.Pool
}

const categoryColumns = `
    id,
    name,
    status,
    created_by_user_id,
    rejection_reason,
    approved_at,
    created_at
`

const prefixedCategoryColumns = `
    c.id,
    c.name,
    c.status,
    c.created_by_user_id,
    c.rejection_reason,
    c.approved_at,
    c.created_at
`

// Create inserts a PENDING category. A taken name yields ErrDuplicate.
func (r *CategoriesRepository) Create(ctx context.Context, name string, createdBy int64) (domain.Category, error) {
	query := fmt.Sprintf(`
        INSERT INTO categories (name, status, created_by_user_id)
        VALUES ($1, $2, $3)
        RETURNING %s
    `, categoryColumns)

	category, err := scanCategory(r.pool.QueryRow(ctx, query, name, string(domain.StatusPending), createdBy))
	if err != nil {
		return domain.Category{}, translate(err)
	}
	return category, nil
}

// Get fetches a category by id.
func (r *CategoriesRepository) Get(ctx context.Context, id int64) (domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)
	category, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Category{}, translate(err)
	}
	return category, nil
}

// GetByName fetches a category by exact, case-sensitive name.
func (r *CategoriesRepository) GetByName(ctx context.Context, name string) (domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE name = $1`, categoryColumns)
	category, err := scanCategory(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		return domain.Category{}, translate(err)
	}
	return category, nil
}

// ListByStatus returns categories in the given lifecycle state ordered by name.
func (r *CategoriesRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE status = $1 ORDER BY name`, categoryColumns)
	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Decide writes an approval workflow transition and returns the updated row.
func (r *CategoriesRepository) Decide(ctx context.Context, id int64, d domain.ApprovalDecision) (domain.Category, error) {
	query := fmt.Sprintf(`
        UPDATE categories
        SET status = $2::text,
            approved_at = COALESCE($3::timestamptz, approved_at),
            rejection_reason = CASE WHEN $2::text = 'REJECTED' THEN $4::text ELSE rejection_reason END
        WHERE id = $1
        RETURNING %s
    `, categoryColumns)

	category, err := scanCategory(r.pool.QueryRow(ctx, query, id, string(d.Status), d.ApprovedAt, d.Reason))
	if err != nil {
		return domain.Category{}, translate(err)
	}
	return category, nil
}

func scanCategory(row pgx.Row) (domain.Category, error) {
	var (
		category domain.Category
		status   string
	)
	err := row.Scan(
		&category.ID,
		&category.Name,
		&status,
		&category.CreatedByUserID,
		&category.RejectionReason,
		&category.ApprovedAt,
		&category.CreatedAt,
	)
	if err != nil {
		return domain.Category{}, err
	}
	category.Status, err = domain.ParseApprovalStatus(status)
	if err != nil {
		return domain.Category{}, err
	}
	return category, nil
}
