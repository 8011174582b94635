package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/identity"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

// HostelStore persists hostels. *repository.HostelsRepository satisfies it.
type HostelStore interface {
	Create(ctx context.Context, params repository.HostelCreateParams) (domain.Hostel, error)
	Get(ctx context.Context, id int64) (domain.Hostel, error)
	AssignCategory(ctx context.Context, hostelID, categoryID int64) error
	Categories(ctx context.Context, hostelID int64) ([]domain.Category, error)
}

// CategoryLookup resolves a category by id.
type CategoryLookup interface {
	Get(ctx context.Context, id int64) (domain.Category, error)
}

// HostelInput is a hostel submission. Status is never taken from input.
type HostelInput struct {
	Name               string   `json:"name" validate:"required,max=255"`
	Description        *string  `json:"description"`
	Address            *string  `json:"address"`
	City               *string  `json:"city" validate:"omitempty,max=100"`
	Locality           *string  `json:"locality" validate:"omitempty,max=100"`
	MonthlyRentMin     *float64 `json:"monthlyRentMin" validate:"omitempty,gte=0"`
	MonthlyRentMax     *float64 `json:"monthlyRentMax" validate:"omitempty,gte=0"`
	HasWifi            bool     `json:"hasWifi"`
	HasAC              bool     `json:"hasAc"`
	HasMess            bool     `json:"hasMess"`
	HasLaundry         bool     `json:"hasLaundry"`
	ContactPersonName  *string  `json:"contactPersonName" validate:"omitempty,max=255"`
	ContactPersonPhone *string  `json:"contactPersonPhone" validate:"omitempty,max=20"`
}

// Hostels handles hostel submission, public lookup and category mapping.
type Hostels struct {
	store      HostelStore
	categories CategoryLookup
	users      identity.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewHostels(store HostelStore, categories CategoryLookup, users identity.Client, logger *zap.Logger) *Hostels {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hostels{
		store:      store,
		categories: categories,
		users:      users,
		validate:   validator.New(),
		logger:     logger.Named("catalog.hostels"),
	}
}

// Create stores a hostel submission as PENDING.
func (h *Hostels) Create(ctx context.Context, userID int64, in HostelInput) (domain.Hostel, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := h.validate.Struct(in); err != nil {
		return domain.Hostel{}, invalid(err)
	}
	if in.MonthlyRentMin != nil && in.MonthlyRentMax != nil && *in.MonthlyRentMin > *in.MonthlyRentMax {
		return domain.Hostel{}, domain.InvalidInput("monthlyRentMin cannot exceed monthlyRentMax")
	}
	if err := requireUser(ctx, h.users, userID); err != nil {
		return domain.Hostel{}, err
	}

	hostel, err := h.store.Create(ctx, repository.HostelCreateParams{
		Name:               in.Name,
		Description:        in.Description,
		Address:            in.Address,
		City:               in.City,
		Locality:           in.Locality,
		MonthlyRentMin:     in.MonthlyRentMin,
		MonthlyRentMax:     in.MonthlyRentMax,
		HasWifi:            in.HasWifi,
		HasAC:              in.HasAC,
		HasMess:            in.HasMess,
		HasLaundry:         in.HasLaundry,
		ContactPersonName:  in.ContactPersonName,
		ContactPersonPhone: in.ContactPersonPhone,
		SubmittedByUserID:  userID,
	})
	if err != nil {
		return domain.Hostel{}, fmt.Errorf("create hostel: %w", err)
	}
	h.logger.Info("hostel submitted", zap.Int64("hostel_id", hostel.ID), zap.Int64("user_id", userID))
	return hostel, nil
}

// Get returns a hostel in any state.
func (h *Hostels) Get(ctx context.Context, id int64) (domain.Hostel, error) {
	hostel, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Hostel{}, domain.NotFound("Hostel", id)
		}
		return domain.Hostel{}, fmt.Errorf("get hostel %d: %w", id, err)
	}
	return hostel, nil
}

// GetApproved returns a hostel only when it is publicly visible.
func (h *Hostels) GetApproved(ctx context.Context, id int64) (domain.Hostel, error) {
	hostel, err := h.Get(ctx, id)
	if err != nil {
		return domain.Hostel{}, err
	}
	if hostel.Status != domain.StatusApproved {
		return domain.Hostel{}, domain.NotFound("Hostel", id)
	}
	return hostel, nil
}

// AssignCategory maps an approved category onto a hostel.
func (h *Hostels) AssignCategory(ctx context.Context, hostelID, categoryID int64) error {
	if _, err := h.Get(ctx, hostelID); err != nil {
		return err
	}
	category, err := h.categories.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Category", categoryID)
		}
		return fmt.Errorf("get category %d: %w", categoryID, err)
	}
	if category.Status != domain.StatusApproved {
		return domain.InvalidInput("Category %d is not approved", categoryID)
	}

	if err := h.store.AssignCategory(ctx, hostelID, categoryID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Conflict("Category %d is already assigned to hostel %d", categoryID, hostelID)
		}
		return fmt.Errorf("assign category: %w", err)
	}
	h.logger.Info("category assigned", zap.Int64("hostel_id", hostelID), zap.Int64("category_id", categoryID))
	return nil
}

// Categories lists the categories mapped to a hostel.
func (h *Hostels) Categories(ctx context.Context, hostelID int64) ([]domain.Category, error) {
	if _, err := h.Get(ctx, hostelID); err != nil {
		return nil, err
	}
	categories, err := h.store.Categories(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("list categories of hostel %d: %w", hostelID, err)
	}
	return categories, nil
}

func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.InvalidInput("%s failed %s validation", lowerFirst(fe.Field()), fe.Tag())
	}
	return domain.InvalidInput("invalid request: %v", err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
