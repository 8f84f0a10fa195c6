// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"github.com/Shivanand-hulikatti/edusync/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventHandler holds the HTTP handlers for events, the dashboard and the calendar.
type EventHandler struct {
	svc service.EventServicer
	log *zap.Logger
	loc *time.Location
	now func() time.Time
}

// NewEventHandler constructs an EventHandler. loc decides the default
// calendar month.
func NewEventHandler(svc service.EventServicer, loc *time.Location, log *zap.Logger) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{svc: svc, log: log, loc: loc, now: time.Now}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Notices: []model.Notice{model.Failure(msg)}})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// errorStatus maps service and repository errors to a status and a
// client-safe message.
func errorStatus(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "Please sign in to continue"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "You are not allowed to do that"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return http.StatusConflict, "You are already registered for this event"
	case errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict, "An account with this email already exists"
	case errors.Is(err, service.ErrLoadEvents):
		return http.StatusServiceUnavailable, "Failed to load events"
	}
	return http.StatusInternalServerError, "Something went wrong"
}

func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	}

	resp := model.ErrorResponse{Error: msg, Notices: []model.Notice{model.Failure(msg)}}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		resp.Notices = []model.Notice{verr.Notice()}
	}
	writeJSON(w, status, resp)
}

// feedErrorResponse carries the refetched list next to a failed result.
type feedErrorResponse struct {
	Error string `json:"error"`
	*model.Feed
}

// writeFeed answers a read. A load failure still returns the prior list.
func writeFeed(w http.ResponseWriter, log *zap.Logger, feed *model.Feed, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, feed)
		return
	}
	if feed == nil {
		writeServiceError(w, log, err)
		return
	}
	status, msg := errorStatus(err)
	writeJSON(w, status, feedErrorResponse{Error: msg, Feed: feed})
}

// writeMutation answers a write. The status reflects the write; a failed
// refetch after a successful write only adds its notice.
func writeMutation(w http.ResponseWriter, log *zap.Logger, okStatus int, feed *model.Feed, err error) {
	if err == nil || (feed != nil && errors.Is(err, service.ErrLoadEvents)) {
		writeJSON(w, okStatus, feed)
		return
	}
	if feed == nil {
		writeServiceError(w, log, err)
		return
	}
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("mutation failed", zap.Error(err))
	}
	writeJSON(w, status, feedErrorResponse{Error: msg, Feed: feed})
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListEvents handles GET /events?search=&category=&status=
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}
	feed, err := h.svc.ListEvents(r.Context(), viewerID(r), f)
	writeFeed(w, h.log, feed, err)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), viewerID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	feed, err := h.svc.CreateEvent(r.Context(), viewerID(r), req)
	writeMutation(w, h.log, http.StatusCreated, feed, err)
}

// Register handles POST /events/{id}/register
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.Register(r.Context(), viewerID(r), chi.URLParam(r, "id"))
	writeMutation(w, h.log, http.StatusOK, feed, err)
}

// Unregister handles DELETE /events/{id}/register
func (h *EventHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.Unregister(r.Context(), viewerID(r), chi.URLParam(r, "id"))
	writeMutation(w, h.log, http.StatusOK, feed, err)
}

// MyEvents handles GET /me/events
func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.MyEvents(r.Context(), viewerID(r))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// Dashboard handles GET /dashboard
func (h *EventHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), viewerID(r))
	if err != nil && d == nil {
		writeServiceError(w, h.log, err)
		return
	}
	status := http.StatusOK
	if err != nil {
		status, _ = errorStatus(err)
	}
	writeJSON(w, status, d)
}

// Calendar handles GET /calendar?year=&month=
// Missing parameters default to the current month.
func (h *EventHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.loc)
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be a number")
			return
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be a number")
			return
		}
		month = n
	}

	cal, err := h.svc.Calendar(r.Context(), viewerID(r), year, time.Month(month))
	if err != nil && cal == nil {
		writeServiceError(w, h.log, err)
		return
	}
	status := http.StatusOK
	if err != nil {
		status, _ = errorStatus(err)
	}
	writeJSON(w, status, cal)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
