package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/hostel-service/internal/domain"
)

// ImagesRepository keeps references to images held by the image store.
type ImagesRepository struct {
	pool *pgxpool.Pool
}

const imageColumns = `id, hostel_id, image_url, public_id, display_order, uploaded_at`

// ImageCreateParams describes an uploaded image reference.
type ImageCreateParams struct {
	HostelID     int64
	URL          string
	PublicID     string
	DisplayOrder int
}

// Create stores an image reference.
func (r *ImagesRepository) Create(ctx context.Context, params ImageCreateParams) (domain.HostelImage, error) {
	query := fmt.Sprintf(`
        INSERT INTO hostel_images (hostel_id, image_url, public_id, display_order)
        VALUES ($1, $2, $3, $4)
        RETURNING %s
    `, imageColumns)

	image, err := scanImage(r.pool.QueryRow(ctx, query, params.HostelID, params.URL, params.PublicID, params.DisplayOrder))
	if err != nil {
		return domain.HostelImage{}, translate(err)
	}
	return image, nil
}

// Get fetches an image reference by id.
func (r *ImagesRepository) Get(ctx context.Context, id int64) (domain.HostelImage, error) {
	query := fmt.Sprintf(`SELECT %s FROM hostel_images WHERE id = $1`, imageColumns)
	image, err := scanImage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.HostelImage{}, translate(err)
	}
	return image, nil
}

// Count returns how many images a hostel holds.
func (r *ImagesRepository) Count(ctx context.Context, hostelID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hostel_images WHERE hostel_id = $1`, hostelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return count, nil
}

// ListByHostel returns a hostel's images by display order.
func (r *ImagesRepository) ListByHostel(ctx context.Context, hostelID int64) ([]domain.HostelImage, error) {
	query := fmt.Sprintf(`SELECT %s FROM hostel_images WHERE hostel_id = $1 ORDER BY display_order, id`, imageColumns)
	rows, err := r.pool.Query(ctx, query, hostelID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]domain.HostelImage, 0)
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

// Delete removes an image reference.
func (r *ImagesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hostel_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (domain.HostelImage, error) {
	var image domain.HostelImage
	err := row.Scan(&image.ID, &image.HostelID, &image.URL, &image.PublicID, &image.DisplayOrder, &image.UploadedAt)
	return image, err
}
