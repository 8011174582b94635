// Package reply attaches at most one reply to a rating.
package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/identity"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

// Store persists replies. *repository.RepliesRepository satisfies it.
type Store interface {
	Create(ctx context.Context, ratingID, userID int64, text string) (domain.Reply, error)
	GetByRating(ctx context.Context, ratingID int64) (domain.Reply, error)
	Delete(ctx context.Context, id int64) error
}

// RatingLookup resolves the rating a reply attaches to.
type RatingLookup interface {
	Get(ctx context.Context, id int64) (domain.Rating, error)
}

type Service struct {
	replies Store
	ratings RatingLookup
	users   identity.Client
	logger  *zap.Logger
}

func NewService(replies Store, ratings RatingLookup, users identity.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{replies: replies, ratings: ratings, users: users, logger: logger.Named("reply")}
}

// Create attaches a reply to a rating. Preconditions short-circuit in order:
// the user exists, the rating exists, the rating has no reply yet.
func (s *Service) Create(ctx context.Context, ratingID, userID int64, text string) (domain.Reply, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Reply{}, domain.InvalidInput("replyText is required")
	}

	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return domain.Reply{}, domain.UserNotFound(userID)
	}

	if _, err := s.ratings.Get(ctx, ratingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Reply{}, domain.NotFound("Rating", ratingID)
		}
		return domain.Reply{}, fmt.Errorf("get rating %d: %w", ratingID, err)
	}

	if _, err := s.replies.GetByRating(ctx, ratingID); err == nil {
		return domain.Reply{}, duplicate(ratingID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Reply{}, fmt.Errorf("check existing reply: %w", err)
	}

	reply, err := s.replies.Create(ctx, ratingID, userID, text)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Reply{}, duplicate(ratingID)
		}
		return domain.Reply{}, fmt.Errorf("create reply: %w", err)
	}
	s.logger.Info("reply created",
		zap.Int64("reply_id", reply.ID),
		zap.Int64("rating_id", ratingID),
		zap.Int64("user_id", userID))
	return reply, nil
}

// Get returns the reply of a rating. The boolean is false when the rating
// has no reply, which is not an error.
func (s *Service) Get(ctx context.Context, ratingID int64) (domain.Reply, bool, error) {
	reply, err := s.replies.GetByRating(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Reply{}, false, nil
		}
		return domain.Reply{}, false, fmt.Errorf("get reply for rating %d: %w", ratingID, err)
	}
	return reply, true, nil
}

// Delete removes a reply by its own id. The parent rating is untouched.
func (s *Service) Delete(ctx context.Context, replyID int64) error {
	if err := s.replies.Delete(ctx, replyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Reply", replyID)
		}
		return fmt.Errorf("delete reply %d: %w", replyID, err)
	}
	s.logger.Info("reply deleted", zap.Int64("reply_id", replyID))
	return nil
}

func duplicate(ratingID int64) error {
	return domain.Conflict("Reply already exists for rating id: %d", ratingID)
}
