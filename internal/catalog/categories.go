package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/identity"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

const maxCategoryName = 100

// CategoryStore persists categories. *repository.CategoriesRepository satisfies it.
type CategoryStore interface {
	Create(ctx context.Context, name string, createdBy int64) (domain.Category, error)
	Get(ctx context.Context, id int64) (domain.Category, error)
	GetByName(ctx context.Context, name string) (domain.Category, error)
}

// Categories handles category submission and lookup. Names are unique by
// exact, case-sensitive match.
type Categories struct {
	store  CategoryStore
	users  identity.Client
	logger *zap.Logger
}

func NewCategories(store CategoryStore, users identity.Client, logger *zap.Logger) *Categories {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Categories{store: store, users: users, logger: logger.Named("catalog.categories")}
}

// Create stores a PENDING category.
func (c *Categories) Create(ctx context.Context, userID int64, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, domain.InvalidInput("Category name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryName {
		return domain.Category{}, domain.InvalidInput("Category name must be at most %d characters", maxCategoryName)
	}
	if err := requireUser(ctx, c.users, userID); err != nil {
		return domain.Category{}, err
	}

	_, err := c.store.GetByName(ctx, name)
	switch {
	case err == nil:
		return domain.Category{}, duplicateName(name)
	case !errors.Is(err, repository.ErrNotFound):
		return domain.Category{}, fmt.Errorf("lookup category %q: %w", name, err)
	}

	category, err := c.store.Create(ctx, name, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Category{}, duplicateName(name)
		}
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	c.logger.Info("category submitted", zap.Int64("category_id", category.ID), zap.String("name", name))
	return category, nil
}

// Get returns a category in any state.
func (c *Categories) Get(ctx context.Context, id int64) (domain.Category, error) {
	category, err := c.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Category{}, domain.NotFound("Category", id)
		}
		return domain.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return category, nil
}


func duplicateName(name string) error {
	return domain.Conflict("Category with name '%s' already exists", name)
}
