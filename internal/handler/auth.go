package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fitweb/fitweb/internal/ctxkeys"
	"github.com/fitweb/fitweb/internal/model"
	"github.com/fitweb/fitweb/internal/repository"
	"github.com/fitweb/fitweb/internal/service"
	"github.com/fitweb/fitweb/internal/upstream"
)

type AuthHandler struct {
	sessions *service.SessionService
	logbook  *service.LogbookService
}

func NewAuthHandler(sessions *service.SessionService, logbook *service.LogbookService) *AuthHandler {
	return &AuthHandler{sessions: sessions, logbook: logbook}
}

// Callback handles the chat bot handoff link: exchange the one-time token,
// set the session cookie, land on the dashboard. Failures redirect back to
// the login screen with a hint instead of rendering an error page.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	oneTimeToken := r.URL.Query().Get("token")
	if oneTimeToken == "" {
		http.Redirect(w, r, "/?auth=missing", http.StatusSeeOther)
		return
	}

	session, err := h.sessions.Login(r.Context(), oneTimeToken)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			http.Redirect(w, r, "/?auth=invalid", http.StatusSeeOther)
			return
		}
		slog.Error("token exchange failed", "error", err)
		http.Redirect(w, r, "/?auth=error", http.StatusSeeOther)
		return
	}

	cookieValue, err := h.sessions.GenerateCookie(session.ID)
	if err != nil {
		slog.Error("sign session cookie", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	h.sessions.SetSessionCookie(w, cookieValue, session.ExpiresAt)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type meResponse struct {
	User model.User `json:"user"`
}

// Me restores the session on app load, revalidating the stored token against
// the tracker API.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	_, user, err := h.sessions.Restore(r.Context(), session.ID)
	if err != nil {
		// A session that failed revalidation for any upstream reason is
		// already deleted; the browser leaves as logged out, not errored.
		var apiErr *upstream.APIError
		if errors.Is(err, repository.ErrSessionNotFound) ||
			errors.Is(err, upstream.ErrUnauthorized) ||
			errors.As(err, &apiErr) {
			h.logbook.Forget(session.ID)
			h.sessions.ClearSessionCookie(w)
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		respondUpstreamError(w, r, h.sessions, err, "failed to restore session")
		return
	}
	respondJSON(w, http.StatusOK, meResponse{User: *user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	if session != nil {
		err := h.sessions.Logout(session.ID)
		if err != nil {
			slog.Error("delete session", "error", err, "session_id", session.ID)
		}
		h.logbook.Forget(session.ID)
	}
	h.sessions.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
