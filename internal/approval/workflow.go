// Package approval implements the PENDING -> APPROVED/REJECTED review
// lifecycle shared by every user-submitted entity.
//
// Approve and Reject are accepted from any current state, including
// re-approving a rejected entity. There is no transition back to PENDING.
package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/metrics"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

// Store is the capability an entity kind provides to the workflow.
// Decide must return repository.ErrNotFound for an unknown id.
type Store[T any] interface {
	ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]T, error)
	Decide(ctx context.Context, id int64, d domain.ApprovalDecision) (T, error)
}

// Workflow drives approval transitions for one entity kind.
type Workflow[T any] struct {
	kind   string
	store  Store[T]
	now    func() time.Time
	logger *zap.Logger
}

// Option customizes a Workflow.
type Option[T any] func(*Workflow[T])

// WithClock overrides the approval timestamp source.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(w *Workflow[T]) { w.now = now }
}

// New builds a workflow. kind names the entity in errors, logs and metrics
// (e.g. "Hostel", "Category").
func New[T any](kind string, store Store[T], logger *zap.Logger, opts ...Option[T]) *Workflow[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Workflow[T]{
		kind:   kind,
		store:  store,
		now:    time.Now,
		logger: logger.Named("approval").With(zap.String("kind", kind)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Approve moves the entity to APPROVED and stamps the approval time.
func (w *Workflow[T]) Approve(ctx context.Context, id int64) (T, error) {
	at := w.now().UTC()
	return w.decide(ctx, id, domain.ApprovalDecision{Status: domain.StatusApproved, ApprovedAt: &at})
}

// Reject moves the entity to REJECTED, storing the optional reason.
func (w *Workflow[T]) Reject(ctx context.Context, id int64, reason *string) (T, error) {
	return w.decide(ctx, id, domain.ApprovalDecision{Status: domain.StatusRejected, Reason: reason})
}

// Pending lists entities awaiting review.
func (w *Workflow[T]) Pending(ctx context.Context) ([]T, error) {
	return w.list(ctx, domain.StatusPending)
}

// Approved lists entities visible to the public surface.
func (w *Workflow[T]) Approved(ctx context.Context) ([]T, error) {
	return w.list(ctx, domain.StatusApproved)
}

func (w *Workflow[T]) list(ctx context.Context, status domain.ApprovalStatus) ([]T, error) {
	items, err := w.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list %s by status %s: %w", w.kind, status, err)
	}
	return items, nil
}

func (w *Workflow[T]) decide(ctx context.Context, id int64, d domain.ApprovalDecision) (T, error) {
	entity, err := w.store.Decide(ctx, id, d)
	if err != nil {
		var zero T
		if errors.Is(err, repository.ErrNotFound) {
			w.logger.Warn("transition on missing entity", zap.Int64("id", id), zap.String("status", string(d.Status)))
			return zero, domain.NotFound(w.kind, id)
		}
		return zero, fmt.Errorf("%s %d to %s: %w", w.kind, id, d.Status, err)
	}
	metrics.ApprovalTransitions.WithLabelValues(w.kind, string(d.Status)).Inc()
	w.logger.Info("status changed", zap.Int64("id", id), zap.String("status", string(d.Status)))
	return entity, nil
}
