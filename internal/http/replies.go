package httpserver

import (
	"net/http"
	"strings"
)

func (s *Server) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	ratingID, err := pathID(r, "ratingId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	userID, err := queryID(r, "userId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	var req replyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, r, err)
		return
	}

	created, err := s.svc.Replies.Create(r.Context(), ratingID, userID, strings.TrimSpace(req.ReplyText))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toReplyResponse(created))
}

func (s *Server) handleGetReply(w http.ResponseWriter, r *http.Request) {
	ratingID, err := pathID(r, "ratingId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	found, ok, err := s.svc.Replies.Get(r.Context(), ratingID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if !ok {
		// "No reply" is a normal outcome; the 404 carries no error body.
		w.WriteHeader(http.StatusNotFound)
		return
	}
	s.respondJSON(w, http.StatusOK, toReplyResponse(found))
}

func (s *Server) handleDeleteReply(w http.ResponseWriter, r *http.Request) {
	replyID, err := pathID(r, "replyId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if err := s.svc.Replies.Delete(r.Context(), replyID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
