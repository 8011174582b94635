package rating

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

type memRatings struct {
	mu         sync.Mutex
	nextID     int64
	rows       []domain.Rating
	lostRace   bool
	failCreate bool
}

func (m *memRatings) Create(_ context.Context, p repository.RatingCreateParams) (domain.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lostRace {
		return domain.Rating{}, repository.ErrDuplicate
	}
	if m.failCreate {
		return domain.Rating{}, errors.New("connection reset by peer")
	}
	for _, r := range m.rows {
		if r.HostelID == p.HostelID && r.UserID == p.UserID {
			return domain.Rating{}, repository.ErrDuplicate
		}
	}
	m.nextID++
	now := time.Now().UTC()
	r := domain.Rating{
		ID:         m.nextID,
		HostelID:   p.HostelID,
		UserID:     p.UserID,
		Criteria:   p.Criteria,
		ReviewText: p.ReviewText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.rows = append(m.rows, r)
	return r, nil
}

func (m *memRatings) Exists(_ context.Context, hostelID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lostRace {
		return false, nil
	}
	for _, r := range m.rows {
		if r.HostelID == hostelID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRatings) ListByHostel(_ context.Context, hostelID int64) ([]domain.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Rating
	for _, r := range m.rows {
		if r.HostelID == hostelID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memHostels map[int64]domain.Hostel

func (m memHostels) Get(_ context.Context, id int64) (domain.Hostel, error) {
	h, ok := m[id]
	if !ok {
		return domain.Hostel{}, repository.ErrNotFound
	}
	return h, nil
}
