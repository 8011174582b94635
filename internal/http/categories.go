package httpserver

import (
	"fmt"
	"net/http"
)

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	var req categoryCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, r, err)
		return
	}

	category, err := s.svc.Categories.Create(r.Context(), userID, req.CategoryName)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/hostel/categories/%d", category.ID))
	s.respondJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (s *Server) handleListApprovedCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.CategoryReview.Approved(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toCategoryResponses(categories))
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	category, err := s.svc.Categories.Get(r.Context(), categoryID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toCategoryResponse(category))
}
