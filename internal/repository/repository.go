package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/hostel-service/internal/store"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("repository: duplicate key")
)

const uniqueViolation = "23505"

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Hostels    *HostelsRepository
	Categories *CategoriesRepository
	Ratings    *RatingsRepository
	Replies    *RepliesRepository
	Images     *ImagesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Hostels:    &HostelsRepository{pool: pool},
		Categories: &CategoriesRepository{pool: pool},
		Ratings:    &RatingsRepository{pool: pool},
		Replies:    &RepliesRepository{pool: pool},
		Images:     &ImagesRepository{pool: pool},
	}
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
