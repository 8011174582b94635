package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/hostel-service/internal/domain"
)

// HostelsRepository provides persistence helpers for hostel entities.
type HostelsRepository struct {
	pool *pgxpool.Pool
}

const hostelColumns = `
    id,
    name,
    description,
    address,
    city,
    locality,
    monthly_rent_min::float8,
    monthly_rent_max::float8,
    has_wifi,
    has_ac,
    has_mess,
    has_laundry,
    contact_person_name,
    contact_person_phone,
    status,
    submitted_by_user_id,
    rejection_reason,
    approved_at,
    created_at,
    updated_at
`

// HostelCreateParams bundles the fields required to create a hostel.
type HostelCreateParams struct {
	Name               string
	Description        *string
	Address            *string
	City               *string
	Locality           *string
	MonthlyRentMin     *float64
	MonthlyRentMax     *float64
	HasWifi            bool
	HasAC              bool
	HasMess            bool
	HasLaundry         bool
	ContactPersonName  *string
	ContactPersonPhone *string
	SubmittedByUserID  int64
}

// Create inserts a new hostel row. The status is always PENDING.
func (r *HostelsRepository) Create(ctx context.Context, params HostelCreateParams) (domain.Hostel, error) {
	query := fmt.Sprintf(`
        INSERT INTO hostels (
            name, description, address, city, locality,
            monthly_rent_min, monthly_rent_max,
            has_wifi, has_ac, has_mess, has_laundry,
            contact_person_name, contact_person_phone,
            status, submitted_by_user_id
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING %s
    `, hostelColumns)

	row := r.pool.QueryRow(ctx, query,
		params.Name,
		params.Description,
		params.Address,
		params.City,
		params.Locality,
		params.MonthlyRentMin,
		params.MonthlyRentMax,
		params.HasWifi,
		params.HasAC,
		params.HasMess,
		params.HasLaundry,
		params.ContactPersonName,
		params.ContactPersonPhone,
		string(domain.StatusPending),
		params.SubmittedByUserID,
	)
	hostel, err := scanHostel(row)
	if err != nil {
		return domain.Hostel{}, fmt.Errorf("create hostel: %w", translate(err))
	}
	return hostel, nil
}

// Get fetches a hostel by its identifier.
func (r *HostelsRepository) Get(ctx context.Context, id int64) (domain.Hostel, error) {
	query := fmt.Sprintf(`SELECT %s FROM hostels WHERE id = $1`, hostelColumns)
	hostel, err := scanHostel(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Hostel{}, translate(err)
	}
	return hostel, nil
}

// ListByStatus returns hostels in the given lifecycle state ordered by id.
func (r *HostelsRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.Hostel, error) {
	query := fmt.Sprintf(`SELECT %s FROM hostels WHERE status = $1 ORDER BY id`, hostelColumns)
	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list hostels: %w", err)
	}
	defer rows.Close()

	hostels := make([]domain.Hostel, 0)
	for rows.Next() {
		hostel, err := scanHostel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hostel: %w", err)
		}
		hostels = append(hostels, hostel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hostels: %w", err)
	}
	return hostels, nil
}

// Decide writes an approval workflow transition and returns the updated row.
func (r *HostelsRepository) Decide(ctx context.Context, id int64, d domain.ApprovalDecision) (domain.Hostel, error) {
	query := fmt.Sprintf(`
        UPDATE hostels
        SET status = $2::text,
            approved_at = COALESCE($3::timestamptz, approved_at),
            rejection_reason = CASE WHEN $2::text = 'REJECTED' THEN $4::text ELSE rejection_reason END,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, hostelColumns)

	hostel, err := scanHostel(r.pool.QueryRow(ctx, query, id, string(d.Status), d.ApprovedAt, d.Reason))
	if err != nil {
		return domain.Hostel{}, translate(err)
	}
	return hostel, nil
}

// AssignCategory links a hostel to a category. The pair is unique.
func (r *HostelsRepository) AssignCategory(ctx context.Context, hostelID, categoryID int64) error {
	const query = `INSERT INTO hostel_categories (hostel_id, category_id) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, hostelID, categoryID); err != nil {
		return translate(err)
	}
	return nil
}

// Categories lists the categories mapped to a hostel.
func (r *HostelsRepository) Categories(ctx context.Context, hostelID int64) ([]domain.Category, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM categories c
        JOIN hostel_categories hc ON hc.category_id = c.id
        WHERE hc.hostel_id = $1
        ORDER BY c.name
    `, prefixedCategoryColumns)

	rows, err := r.pool.Query(ctx, query, hostelID)
	if err != nil {
		return nil, fmt.Errorf("list hostel categories: %w", err)
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
	return categories, rows.Err()
}

func scanHostel(row pgx.Row) (domain.Hostel, error) {
	var (
		hostel domain.Hostel
		status string
	)
	err := row.Scan(
		&hostel.ID,
		&hostel.Name,
		&hostel.Description,
		&hostel.Address,
		&hostel.City,
		&hostel.Locality,
		&hostel.MonthlyRentMin,
		&hostel.MonthlyRentMax,
		&hostel.HasWifi,
		&hostel.HasAC,
		&hostel.HasMess,
		&hostel.HasLaundry,
		&hostel.ContactPersonName,
		&hostel.ContactPersonPhone,
		&status,
		&hostel.SubmittedByUserID,
		&hostel.RejectionReason,
		&hostel.ApprovedAt,
		&hostel.CreatedAt,
		&hostel.UpdatedAt,
	)
	if err != nil {
		return domain.Hostel{}, err
	}
	hostel.Status, err = domain.ParseApprovalStatus(status)
	if err != nil {
		return domain.Hostel{}, err
	}
	return hostel, nil
}
