package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/rating"
)

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	userID, err := queryID(r, "userId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, r, err)
		return
	}

	created, err := s.svc.Ratings.Submit(r.Context(), rating.SubmitInput{
		HostelID: hostelID,
		UserID:   userID,
		Criteria: domain.Criteria{
			Cleanliness:   req.CleanlinessRating,
			FoodQuality:   req.FoodQualityRating,
			Safety:        req.SafetyRating,
			Location:      req.LocationRating,
			Affordability: req.AffordabilityRating,
		},
		ReviewText: normalizeStringPtr(req.ReviewText),
	})
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toRatingResponse(created))
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	ratings, err := s.svc.Ratings.ListByHostel(r.Context(), hostelID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	items := make([]ratingResponse, 0, len(ratings))
	for _, rt := range ratings {
		items = append(items, toRatingResponse(rt))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleRatingSummary(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	summary, err := s.svc.Ratings.Summarize(r.Context(), hostelID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (s *Server) handleSmoothedScore(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	score, err := s.svc.Ranking.Score(r.Context(), hostelID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, scoreResponse{HostelID: hostelID, BayesianAverage: score})
}
