package catalog

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/imagestore"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

type memHostels struct {
	nextID   int64
	rows     map[int64]domain.Hostel
	mappings map[[2]int64]bool
	cats     *memCategories
}

func newMemHostels(cats *memCategories) *memHostels {
	return &memHostels{rows: map[int64]domain.Hostel{}, mappings: map[[2]int64]bool{}, cats: cats}
}

func (m *memHostels) Create(_ context.Context, p repository.HostelCreateParams) (domain.Hostel, error) {
	m.nextID++
	now := time.Now().UTC()
	h := domain.Hostel{
		ID:                m.nextID,
		Name:              p.Name,
		City:              p.City,
		HasWifi:           p.HasWifi,
		MonthlyRentMin:    p.MonthlyRentMin,
		MonthlyRentMax:    p.MonthlyRentMax,
		Status:            domain.StatusPending,
		SubmittedByUserID: p.SubmittedByUserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.rows[h.ID] = h
	return h, nil
}

func (m *memHostels) put(h domain.Hostel) {
	m.rows[h.ID] = h
	if h.ID > m.nextID {
		m.nextID = h.ID
	}
}

func (m *memHostels) Get(_ context.Context, id int64) (domain.Hostel, error) {
	h, ok := m.rows[id]
	if !ok {
		return domain.Hostel{}, repository.ErrNotFound
	}
	return h, nil
}

func (m *memHostels) AssignCategory(_ context.Context, hostelID, categoryID int64) error {
	key := [2]int64{hostelID, categoryID}
	if m.mappings[key] {
		return repository.ErrDuplicate
	}
	m.mappings[key] = true
	return nil
}

func (m *memHostels) Categories(ctx context.Context, hostelID int64) ([]domain.Category, error) {
	out := make([]domain.Category, 0)
	for key := range m.mappings {
		if key[0] != hostelID {
			continue
		}
		c, err := m.cats.Get(ctx, key[1])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memCategories struct {
	nextID int64
	rows   map[int64]domain.Category
}

func newMemCategories() *memCategories {
	return &memCategories{rows: map[int64]domain.Category{}}
}

func (m *memCategories) put(c domain.Category) {
	m.rows[c.ID] = c
	if c.ID > m.nextID {
		m.nextID = c.ID
	}
}

func (m *memCategories) Create(_ context.Context, name string, createdBy int64) (domain.Category, error) {
	for _, c := range m.rows {
		if c.Name == name {
			return domain.Category{}, repository.ErrDuplicate
		}
	}
	m.nextID++
	c := domain.Category{ID: m.nextID, Name: name, Status: domain.StatusPending, CreatedByUserID: createdBy, CreatedAt: time.Now()}
	m.rows[c.ID] = c
	return c, nil
}

func (m *memCategories) Get(_ context.Context, id int64) (domain.Category, error) {
	c, ok := m.rows[id]
	if !ok {
		return domain.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (m *memCategories) GetByName(_ context.Context, name string) (domain.Category, error) {
	for _, c := range m.rows {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.Category{}, repository.ErrNotFound
}

type memImages struct {
	nextID    int64
	rows      map[int64]domain.HostelImage
	failWrite bool
}

func newMemImages() *memImages {
	return &memImages{rows: map[int64]domain.HostelImage{}}
}

func (m *memImages) Create(_ context.Context, p repository.ImageCreateParams) (domain.HostelImage, error) {
	if m.failWrite {
		return domain.HostelImage{}, errors.New("insert failed")
	}
	for _, img := range m.rows {
		if img.HostelID == p.HostelID && img.DisplayOrder == p.DisplayOrder {
			return domain.HostelImage{}, repository.ErrDuplicate
		}
	}
	m.nextID++
	img := domain.HostelImage{ID: m.nextID, HostelID: p.HostelID, URL: p.URL, PublicID: p.PublicID, DisplayOrder: p.DisplayOrder, UploadedAt: time.Now()}
	m.rows[img.ID] = img
	return img, nil
}

func (m *memImages) Get(_ context.Context, id int64) (domain.HostelImage, error) {
	img, ok := m.rows[id]
	if !ok {
		return domain.HostelImage{}, repository.ErrNotFound
	}
	return img, nil
}

func (m *memImages) Count(_ context.Context, hostelID int64) (int, error) {
	n := 0
	for _, img := range m.rows {
		if img.HostelID == hostelID {
			n++
		}
	}
	return n, nil
}

func (m *memImages) ListByHostel(_ context.Context, hostelID int64) ([]domain.HostelImage, error) {
	out := make([]domain.HostelImage, 0)
	for _, img := range m.rows {
		if img.HostelID == hostelID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memImages) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type fakeBlobs struct {
	uploads int
	deleted []string
}

func (f *fakeBlobs) Upload(_ context.Context, r io.Reader, name string) (imagestore.Uploaded, error) {
	if _, err := io.ReadAll(r); err != nil {
		return imagestore.Uploaded{}, err
	}
	f.uploads++
	id := "hostel-service/hostels/" + name
	return imagestore.Uploaded{URL: "https://cdn.example/" + id, PublicID: id}, nil
}

func (f *fakeBlobs) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}
