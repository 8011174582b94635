package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/imagestore"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

// DefaultMaxImages caps the gallery size of a single hostel.
const DefaultMaxImages = 5

// ErrImagesDisabled is returned when no image store is configured.
var ErrImagesDisabled = errors.New("image uploads are not configured")

// ImageStore persists image references. *repository.ImagesRepository satisfies it.
type ImageStore interface {
	Create(ctx context.Context, params repository.ImageCreateParams) (domain.HostelImage, error)
	Get(ctx context.Context, id int64) (domain.HostelImage, error)
	Count(ctx context.Context, hostelID int64) (int, error)
	ListByHostel(ctx context.Context, hostelID int64) ([]domain.HostelImage, error)
	Delete(ctx context.Context, id int64) error
}

// HostelLookup resolves a hostel by id.
type HostelLookup interface {
	Get(ctx context.Context, id int64) (domain.Hostel, error)
}

// Upload is one image file to attach to a hostel.
type Upload struct {
	HostelID     int64
	DisplayOrder int
	FileName     string
	Body         io.Reader
}

// Gallery stores hostel images in the external image store and keeps their
// references in the database.
type Gallery struct {
	images    ImageStore
	hostels   HostelLookup
	blobs     imagestore.Store
	maxImages int
	logger    *zap.Logger
}

func NewGallery(images ImageStore, hostels HostelLookup, blobs imagestore.Store, maxImages int, logger *zap.Logger) *Gallery {
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gallery{images: images, hostels: hostels, blobs: blobs, maxImages: maxImages, logger: logger.Named("catalog.gallery")}
}

// Upload pushes the file to the image store and records it. The cap is
// checked before anything is uploaded. Each display slot holds one image,
// which the database enforces, so concurrent uploads cannot exceed the cap.
func (g *Gallery) Upload(ctx context.Context, up Upload) (domain.HostelImage, error) {
	if up.DisplayOrder < 1 || up.DisplayOrder > g.maxImages {
		return domain.HostelImage{}, domain.InvalidInput("Display order must be between 1 and %d", g.maxImages)
	}
	if up.Body == nil {
		return domain.HostelImage{}, domain.InvalidInput("Image file is required")
	}
	if _, err := g.hostels.Get(ctx, up.HostelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.HostelImage{}, domain.NotFound("Hostel", up.HostelID)
		}
		return domain.HostelImage{}, fmt.Errorf("get hostel %d: %w", up.HostelID, err)
	}

	count, err := g.images.Count(ctx, up.HostelID)
	if err != nil {
		return domain.HostelImage{}, err
	}
	if count >= g.maxImages {
		return domain.HostelImage{}, domain.InvalidInput("Maximum %d images allowed per hostel", g.maxImages)
	}

	stored, err := g.blobs.Upload(ctx, up.Body, up.FileName)
	if err != nil {
		if errors.Is(err, imagestore.ErrUnavailable) {
			return domain.HostelImage{}, ErrImagesDisabled
		}
		return domain.HostelImage{}, fmt.Errorf("upload image: %w", err)
	}

	image, err := g.images.Create(ctx, repository.ImageCreateParams{
		HostelID:     up.HostelID,
		URL:          stored.URL,
		PublicID:     stored.PublicID,
		DisplayOrder: up.DisplayOrder,
	})
	if err != nil {
		if delErr := g.blobs.Delete(ctx, stored.PublicID); delErr != nil {
			g.logger.Error("orphaned image cleanup failed", zap.String("public_id", stored.PublicID), zap.Error(delErr))
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.HostelImage{}, domain.Conflict("Display order %d is already used for hostel %d", up.DisplayOrder, up.HostelID)
		}
		return domain.HostelImage{}, fmt.Errorf("record image: %w", err)
	}
	g.logger.Info("image attached", zap.Int64("image_id", image.ID), zap.Int64("hostel_id", up.HostelID))
	return image, nil
}

// List returns a hostel's images ordered by display order.
func (g *Gallery) List(ctx context.Context, hostelID int64) ([]domain.HostelImage, error) {
	images, err := g.images.ListByHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes the image from the image store, then its reference.
func (g *Gallery) Delete(ctx context.Context, imageID int64) error {
	image, err := g.images.Get(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Image", imageID)
		}
		return fmt.Errorf("get image %d: %w", imageID, err)
	}
	if err := g.blobs.Delete(ctx, image.PublicID); err != nil {
		if errors.Is(err, imagestore.ErrUnavailable) {
			return ErrImagesDisabled
		}
		return fmt.Errorf("delete image %s: %w", image.PublicID, err)
	}
	if err := g.images.Delete(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Image", imageID)
		}
		return err
	}
	g.logger.Info("image deleted", zap.Int64("image_id", imageID), zap.Int64("hostel_id", image.HostelID))
	return nil
}
