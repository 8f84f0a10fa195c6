package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AnnouncementHandler holds the announcements board handlers.
type AnnouncementHandler struct {
	svc service.AnnouncementServicer
	log *zap.Logger
}

// NewAnnouncementHandler constructs an AnnouncementHandler.
func NewAnnouncementHandler(svc service.AnnouncementServicer, log *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc, log: log}
}

// List handles GET /announcements
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to load announcements")
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// Create handles POST /announcements
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAnnouncementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	feed, err := h.svc.Create(r.Context(), viewerID(r), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, feed)
}

// Delete handles DELETE /announcements/{id}
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.Delete(r.Context(), viewerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
