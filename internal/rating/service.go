// Package rating accepts multi-criteria ratings for approved hostels and
// aggregates them into per-criterion summaries.
package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/identity"
	"github.com/Clark-Hu/hostel-service/internal/metrics"
	"github.com/Clark-Hu/hostel-service/internal/repository"
)

// Store persists ratings. *repository.RatingsRepository satisfies it.
type Store interface {
	Create(ctx context.Context, params repository.RatingCreateParams) (domain.Rating, error)
	Exists(ctx context.Context, hostelID, userID int64) (bool, error)
	ListByHostel(ctx context.Context, hostelID int64) ([]domain.Rating, error)
}

// HostelLookup resolves the hostel a rating targets.
type HostelLookup interface {
	Get(ctx context.Context, id int64) (domain.Hostel, error)
}

// SubmitInput is a single user's rating of a hostel.
type SubmitInput struct {
	HostelID   int64
	UserID     int64
	Criteria   domain.Criteria
	ReviewText *string
}

// Service implements rating submission and aggregation.
type Service struct {
	ratings  Store
	hostels  HostelLookup
	users    identity.Client
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService wires a rating service.
func NewService(ratings Store, hostels HostelLookup, users identity.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ratings:  ratings,
		hostels:  hostels,
		users:    users,
		validate: validator.New(),
		logger:   logger.Named("rating"),
	}
}

// Outcome labels of metrics.RatingsSubmitted.
const (
	OutcomeAccepted      = "accepted"
	OutcomeInvalid       = "invalid"
	OutcomeUnknownUser   = "unknown_user"
	OutcomeUnknownHostel = "unknown_hostel"
	OutcomeDuplicate     = "duplicate"
	OutcomeError         = "error"
)

// Submit validates and stores a rating. Checks run in order: criteria range,
// user existence, hostel existence and approval, then the one-rating-per-user
// rule. Every call counts exactly one outcome.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (domain.Rating, error) {
	rating, outcome, err := s.submit(ctx, in)
	metrics.RatingsSubmitted.WithLabelValues(outcome).Inc()
	if err != nil {
		if outcome == OutcomeError {
			s.logger.Warn("rating submission failed",
				zap.Int64("hostel_id", in.HostelID),
				zap.Int64("user_id", in.UserID),
				zap.Error(err))
		}
		return domain.Rating{}, err
	}
	s.logger.Info("rating submitted",
		zap.Int64("rating_id", rating.ID),
		zap.Int64("hostel_id", rating.HostelID),
		zap.Int64("user_id", rating.UserID),
		zap.Float64("overall", rating.Overall()))
	return rating, nil
}

func (s *Service) submit(ctx context.Context, in SubmitInput) (domain.Rating, string, error) {
	if err := s.validateCriteria(in.Criteria); err != nil {
		return domain.Rating{}, OutcomeInvalid, err
	}

	ok, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return domain.Rating{}, OutcomeError, fmt.Errorf("check user %d: %w", in.UserID, err)
	}
	if !ok {
		return domain.Rating{}, OutcomeUnknownUser, domain.UserNotFound(in.UserID)
	}

	hostel, err := s.hostels.Get(ctx, in.HostelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Rating{}, OutcomeUnknownHostel, domain.NotFound("Hostel", in.HostelID)
		}
		return domain.Rating{}, OutcomeError, fmt.Errorf("get hostel %d: %w", in.HostelID, err)
	}
	if hostel.Status != domain.StatusApproved {
		return domain.Rating{}, OutcomeUnknownHostel, domain.NotFound("Hostel", in.HostelID)
	}

	exists, err := s.ratings.Exists(ctx, in.HostelID, in.UserID)
	if err != nil {
		return domain.Rating{}, OutcomeError, fmt.Errorf("check existing rating: %w", err)
	}
	if exists {
		return domain.Rating{}, OutcomeDuplicate, duplicate(in)
	}

	rating, err := s.ratings.Create(ctx, repository.RatingCreateParams{
		HostelID:   in.HostelID,
		UserID:     in.UserID,
		Criteria:   in.Criteria,
		ReviewText: in.ReviewText,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Rating{}, OutcomeDuplicate, duplicate(in)
		}
		return domain.Rating{}, OutcomeError, fmt.Errorf("create rating: %w", err)
	}
	return rating, OutcomeAccepted, nil
}

// ListByHostel returns every rating for a hostel, newest first. An unknown
// hostel yields an empty list.
func (s *Service) ListByHostel(ctx context.Context, hostelID int64) ([]domain.Rating, error) {
	ratings, err := s.ratings.ListByHostel(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("list ratings for hostel %d: %w", hostelID, err)
	}
	return ratings, nil
}

// Summarize returns the per-criterion means for a hostel.
func (s *Service) Summarize(ctx context.Context, hostelID int64) (domain.RatingSummary, error) {
	ratings, err := s.ListByHostel(ctx, hostelID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	summary := Summarize(ratings)
	summary.HostelID = hostelID
	return summary, nil
}

func (s *Service) validateCriteria(c domain.Criteria) error {
	err := s.validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.InvalidInput("%s must be between 1 and 5", criterionName(verrs[0].Field()))
	}
	return domain.InvalidInput("invalid rating criteria")
}

func duplicate(in SubmitInput) error {
	return domain.Conflict("User %d has already rated hostel %d", in.UserID, in.HostelID)
}

func criterionName(field string) string {
	switch field {
	case "Cleanliness":
		return "cleanlinessRating"
	case "FoodQuality":
		return "foodQualityRating"
	case "Safety":
		return "safetyRating"
	case "Location":
		return "locationRating"
	case "Affordability":
		return "affordabilityRating"
	}
	return field
}
