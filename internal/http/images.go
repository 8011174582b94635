package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Clark-Hu/hostel-service/internal/catalog"
)

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Expected a multipart form with hostelId, displayOrder and file")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	hostelID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("hostelId")), 10, 64)
	if err != nil || hostelID <= 0 {
		s.respondError(w, r, http.StatusBadRequest, "invalid hostelId")
		return
	}
	displayOrder, err := strconv.Atoi(strings.TrimSpace(r.FormValue("displayOrder")))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid displayOrder")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	image, err := s.svc.Gallery.Upload(r.Context(), catalog.Upload{
		HostelID:     hostelID,
		DisplayOrder: displayOrder,
		FileName:     header.Filename,
		Body:         file,
	})
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toImageResponse(image))
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	hostelID, err := pathID(r, "hostelId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	images, err := s.svc.Gallery.List(r.Context(), hostelID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	items := make([]imageResponse, 0, len(images))
	for _, img := range images {
		items = append(items, toImageResponse(img))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imageId")
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if err := s.svc.Gallery.Delete(r.Context(), imageID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
