package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fitweb/fitweb/internal/service"
	"github.com/fitweb/fitweb/internal/upstream"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondUpstreamError maps a failed tracker API call to a response. An auth
// failure clears the session cookie so the SPA drops straight back to the
// login screen; other upstream statuses pass through, and transport failures
// surface as a bad gateway.
func respondUpstreamError(w http.ResponseWriter, r *http.Request, sessions *service.SessionService, err error, msg string) {
	if errors.Is(err, upstream.ErrUnauthorized) {
		sessions.ClearSessionCookie(w)
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		slog.Error(msg, "error", err, "status", apiErr.Status, "path", r.URL.Path)
		respondError(w, apiErr.Status, msg)
		return
	}

	slog.Error(msg, "error", err, "path", r.URL.Path)
	respondError(w, http.StatusBadGateway, msg)
}

// rangeParam reads the ?range= filter, with a per-view default.
func rangeParam(r *http.Request, fallback string) string {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		return fallback
	}
	return rng
}
