package httpserver

import (
	"fmt"
	"net/http"

	"github.com/Clark-Hu/hostel-service/internal/catalog"
)

func (s *Server) handleCreateHostel(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	var req catalog.HostelInput
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, r, err)
		return
	}

	hostel, err := s.svc.Hostels.Create(r.Context(), userID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/hostel/hostels/%d", hostel.ID))
	s.respondJSON(w, http.StatusCreated, toHostelResponse(hostel))
}

func (s *Server) handleListApprovedHostels(w http.ResponseWriter, r *http.Request) {
	hostels, err := s.svc.HostelReview.Approved(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toHostelResponses(hostels))
}

func (s *Server) handleGetHostel(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	hostel, err := s.svc.Hostels.GetApproved(r.Context(), hostelID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toHostelResponse(hostel))
}

func (s *Server) handleListHostelCategories(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	categories, err := s.svc.Hostels.Categories(r.Context(), hostelID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toCategoryResponses(categories))
}

func (s *Server) handleAssignCategory(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	var req assignCategoryRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, r, err)
		return
	}
	if req.CategoryID <= 0 {
		s.respondError(w, r, http.StatusBadRequest, "categoryId is required")
		return
	}
	if err := s.svc.Hostels.AssignCategory(r.Context(), hostelID, req.CategoryID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRankedHostels(w http.ResponseWriter, r *http.Request) {
	ranked, err := s.svc.Ranking.Rank(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toRankedResponses(ranked))
}

func (s *Server) handleTopRankedHostels(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	ranked, err := s.svc.Ranking.Top(r.Context(), limit)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toRankedResponses(ranked))
}
