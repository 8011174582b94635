package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/identity"
	"github.com/Clark-Hu/hostel-service/internal/imagestore"
)

var users = identity.NewStatic(1, 2, 3)

func ptr[T any](v T) *T { return &v }

func TestHostelCreateAlwaysPending(t *testing.T) {
	hostels := NewHostels(newMemHostels(newMemCategories()), newMemCategories(), users, nil)

	got, err := hostels.Create(context.Background(), 1, HostelInput{
		Name:    "  Green Nest  ",
		City:    ptr("Pune"),
		HasWifi: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Nest", got.Name)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, int64(1), got.SubmittedByUserID)
	assert.Nil(t, got.ApprovedAt)
}

func TestHostelCreateValidation(t *testing.T) {
	hostels := NewHostels(newMemHostels(newMemCategories()), newMemCategories(), users, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  int64
		in      HostelInput
		wantErr error
	}{
		{"blank name", 1, HostelInput{Name: "   "}, domain.ErrInvalidInput},
		{"negative rent", 1, HostelInput{Name: "x", MonthlyRentMin: ptr(-1.0)}, domain.ErrInvalidInput},
		{"inverted rent range", 1, HostelInput{Name: "x", MonthlyRentMin: ptr(9000.0), MonthlyRentMax: ptr(5000.0)}, domain.ErrInvalidInput},
		{"long phone", 1, HostelInput{Name: "x", ContactPersonPhone: ptr(strings.Repeat("9", 21))}, domain.ErrInvalidInput},
		{"unknown user", 404, HostelInput{Name: "x"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hostels.Create(ctx, tt.userID, tt.in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHostelGetApprovedHidesPending(t *testing.T) {
	store := newMemHostels(newMemCategories())
	store.put(domain.Hostel{ID: 1, Name: "open", Status: domain.StatusApproved})
	store.put(domain.Hostel{ID: 2, Name: "waiting", Status: domain.StatusPending})
	store.put(domain.Hostel{ID: 3, Name: "refused", Status: domain.StatusRejected})
	hostels := NewHostels(store, newMemCategories(), users, nil)
	ctx := context.Background()

	got, err := hostels.GetApproved(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "open", got.Name)

	for _, id := range []int64{2, 3, 4} {
		_, err := hostels.GetApproved(ctx, id)
		require.ErrorIs(t, err, domain.ErrNotFound, "id %d", id)
	}
}

func TestAssignCategory(t *testing.T) {
	cats := newMemCategories()
	cats.put(domain.Category{ID: 1, Name: "PG", Status: domain.StatusApproved})
	cats.put(domain.Category{ID: 2, Name: "Co-living", Status: domain.StatusPending})
	store := newMemHostels(cats)
	store.put(domain.Hostel{ID: 10, Name: "Green Nest", Status: domain.StatusApproved})
	hostels := NewHostels(store, cats, users, nil)
	ctx := context.Background()

	require.NoError(t, hostels.AssignCategory(ctx, 10, 1))

	err := hostels.AssignCategory(ctx, 10, 1)
	require.ErrorIs(t, err, domain.ErrConflict)

	err = hostels.AssignCategory(ctx, 10, 2)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = hostels.AssignCategory(ctx, 10, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Category not found with id: 99")

	err = hostels.AssignCategory(ctx, 11, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Hostel not found with id: 11")

	mapped, err := hostels.Categories(ctx, 10)
	require.NoError(t, err)
	require.Len(t, mapped, 1)
	assert.Equal(t, "PG", mapped[0].Name)
}

func TestCategoryCreate(t *testing.T) {
	categories := NewCategories(newMemCategories(), users, nil)
	ctx := context.Background()

	got, err := categories.Create(ctx, 2, "  Boys Hostel ")
	require.NoError(t, err)
	assert.Equal(t, "Boys Hostel", got.Name)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, int64(2), got.CreatedByUserID)

	_, err = categories.Create(ctx, 1, "Boys Hostel")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Category with name 'Boys Hostel' already exists")

	// Exact-match uniqueness: a different case is a different name.
	_, err = categories.Create(ctx, 1, "boys hostel")
	require.NoError(t, err)

	_, err = categories.Create(ctx, 1, " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = categories.Create(ctx, 1, strings.Repeat("a", maxCategoryName+1))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// The limit counts characters, not bytes.
	cyrillic := strings.Repeat("ж", maxCategoryName)
	got, err = categories.Create(ctx, 1, cyrillic)
	require.NoError(t, err)
	assert.Equal(t, cyrillic, got.Name)
	_, err = categories.Create(ctx, 1, cyrillic+"ж")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = categories.Create(ctx, 77, "Girls Hostel")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = categories.Get(ctx, 500)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func newGallery(blobs imagestore.Store) (*Gallery, *memImages) {
	hostels := newMemHostels(newMemCategories())
	hostels.put(domain.Hostel{ID: 1, Name: "Green Nest", Status: domain.StatusApproved})
	images := newMemImages()
	return NewGallery(images, hostels, blobs, DefaultMaxImages, nil), images
}

func TestGalleryUploadAndList(t *testing.T) {
	blobs := &fakeBlobs{}
	gallery, _ := newGallery(blobs)
	ctx := context.Background()

	for _, order := range []int{3, 1, 2} {
		_, err := gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: order, FileName: fmt.Sprintf("img%d.png", order), Body: strings.NewReader("png")})
		require.NoError(t, err)
	}

	images, err := gallery.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{images[0].DisplayOrder, images[1].DisplayOrder, images[2].DisplayOrder})
	assert.Equal(t, "https://cdn.example/hostel-service/hostels/img1.png", images[0].URL)
}

func TestGalleryCapCheckedBeforeUpload(t *testing.T) {
	blobs := &fakeBlobs{}
	gallery, _ := newGallery(blobs)
	ctx := context.Background()

	for i := 1; i <= DefaultMaxImages; i++ {
		_, err := gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: i, FileName: "f", Body: strings.NewReader("x")})
		require.NoError(t, err)
	}
	_, err := gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: 1, FileName: "f", Body: strings.NewReader("x")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, DefaultMaxImages, blobs.uploads)
}

func TestGalleryUploadValidation(t *testing.T) {
	blobs := &fakeBlobs{}
	gallery, _ := newGallery(blobs)
	ctx := context.Background()

	_, err := gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: 0, Body: strings.NewReader("x")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: 6, Body: strings.NewReader("x")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: 1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = gallery.Upload(ctx, Upload{HostelID: 9, DisplayOrder: 1, Body: strings.NewReader("x")})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, blobs.uploads)
}

func TestGalleryRecordFailureCleansUpBlob(t *testing.T) {
	blobs := &fakeBlobs{}
	gallery, images := newGallery(blobs)
	images.failWrite = true

	_, err := gallery.Upload(context.Background(), Upload{HostelID: 1, DisplayOrder: 1, FileName: "a.png", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.Equal(t, []string{"hostel-service/hostels/a.png"}, blobs.deleted)
}

func TestGalleryTakenDisplayOrderIsConflict(t *testing.T) {
	blobs := &fakeBlobs{}
	gallery, images := newGallery(blobs)
	ctx := context.Background()

	_, err := gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: 2, FileName: "first.png", Body: strings.NewReader("x")})
	require.NoError(t, err)

	_, err = gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: 2, FileName: "second.png", Body: strings.NewReader("y")})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Display order 2 is already used for hostel 1")
	assert.Equal(t, []string{"hostel-service/hostels/second.png"}, blobs.deleted)
	assert.Len(t, images.rows, 1)
}

func TestGalleryDelete(t *testing.T) {
	blobs := &fakeBlobs{}
	gallery, images := newGallery(blobs)
	ctx := context.Background()

	img, err := gallery.Upload(ctx, Upload{HostelID: 1, DisplayOrder: 1, FileName: "a.png", Body: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, gallery.Delete(ctx, img.ID))
	assert.Equal(t, []string{img.PublicID}, blobs.deleted)
	assert.Empty(t, images.rows)

	err = gallery.Delete(ctx, img.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGalleryDisabledStore(t *testing.T) {
	gallery, _ := newGallery(imagestore.Disabled{})
	_, err := gallery.Upload(context.Background(), Upload{HostelID: 1, DisplayOrder: 1, Body: strings.NewReader("x")})
	require.ErrorIs(t, err, ErrImagesDisabled)
}
