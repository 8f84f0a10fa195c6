package handler

import (
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"github.com/Shivanand-hulikatti/edusync/internal/service"
	"github.com/Shivanand-hulikatti/edusync/internal/session"
	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"
)

// AuthHandler holds the sign-up, sign-in and profile handlers.
type AuthHandler struct {
	svc      service.AuthServicer
	sessions *scs.SessionManager
	log      *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc service.AuthServicer, sessions *scs.SessionManager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, log: log}
}

type sessionResponse struct {
	SignedIn bool           `json:"signed_in"`
	UserID   string         `json:"user_id,omitempty"`
	Profile  *model.Profile `json:"profile,omitempty"`
	Notices  []model.Notice `json:"notices"`
}

// SignUp handles POST /auth/signup and signs the new account in.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	profile, err := h.svc.SignUp(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if err := h.startSession(r, profile.UserID); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		SignedIn: true,
		UserID:   profile.UserID,
		Profile:  profile,
		Notices:  []model.Notice{model.Success("Account created successfully")},
	})
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Info("failed sign-in", zap.String("remote_addr", clientIP(r)))
		}
		writeServiceError(w, h.log, err)
		return
	}
	if err := h.startSession(r, user.ID); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	resp := sessionResponse{
		SignedIn: true,
		UserID:   user.ID,
		Notices:  []model.Notice{model.Success("Signed in successfully")},
	}
	if profile, err := h.svc.Profile(r.Context(), user.ID); err == nil {
		resp.Profile = profile
	} else if !errors.Is(err, repository.ErrNotFound) {
		h.log.Warn("failed to load profile", zap.String("user_id", user.ID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, resp)
}

// SignOut handles POST /auth/signout.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.svc.SignOut(r.Context(), viewerID(r))
	if err := h.sessions.Destroy(r.Context()); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Notices: []model.Notice{model.Success("Signed out")}})
}

// Session handles GET /auth/session. Anonymous callers get signed_in=false.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	id := viewerID(r)
	resp := sessionResponse{SignedIn: id != "", UserID: id, Notices: []model.Notice{}}
	if id != "" {
		profile, err := h.svc.Profile(r.Context(), id)
		switch {
		case err == nil:
			resp.Profile = profile
		case !errors.Is(err, repository.ErrNotFound):
			writeServiceError(w, h.log, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile(r.Context(), viewerID(r))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// startSession rotates the session token before storing the user ID.
func (h *AuthHandler) startSession(r *http.Request, userID string) error {
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sessions.Put(r.Context(), session.KeyUserID, userID)
	return nil
}
