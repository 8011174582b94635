package httpserver

import (
	"net/http"
)

func (s *Server) handleListPendingHostels(w http.ResponseWriter, r *http.Request) {
	hostels, err := s.svc.HostelReview.Pending(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toHostelResponses(hostels))
}

func (s *Server) handleApproveHostel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	hostel, err := s.svc.HostelReview.Approve(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toHostelResponse(hostel))
}

func (s *Server) handleRejectHostel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	hostel, err := s.svc.HostelReview.Reject(r.Context(), id, rejectReason(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toHostelResponse(hostel))
}

func (s *Server) handleListPendingCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.CategoryReview.Pending(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toCategoryResponses(categories))
}

func (s *Server) handleApproveCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "categoryId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	category, err := s.svc.CategoryReview.Approve(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (s *Server) handleRejectCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "categoryId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	category, err := s.svc.CategoryReview.Reject(r.Context(), id, rejectReason(r))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toCategoryResponse(category))
}

// rejectReason reads the optional ?reason= parameter. Blank means none.
func rejectReason(r *http.Request) *string {
	reason := r.URL.Query().Get("reason")
	return normalizeStringPtr(&reason)
}
