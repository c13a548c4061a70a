package handler

import (
	"net/http"

	"github.com/fitweb/fitweb/internal/ctxkeys"
	"github.com/fitweb/fitweb/internal/service"
	"github.com/fitweb/fitweb/internal/upstream"
)

type LiftingHandler struct {
	dashboard *service.DashboardService
	sessions  *service.SessionService
	tracker   *upstream.Client
}

func NewLiftingHandler(dashboard *service.DashboardService, sessions *service.SessionService, tracker *upstream.Client) *LiftingHandler {
	return &LiftingHandler{dashboard: dashboard, sessions: sessions, tracker: tracker}
}

func (h *LiftingHandler) Exercises(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	exercises, err := h.tracker.Exercises(r.Context(), session.Token, rangeParam(r, "30d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load exercises")
		return
	}
	respondJSON(w, http.StatusOK, exercises)
}

func (h *LiftingHandler) ExerciseNames(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	names, err := h.tracker.ExerciseNames(r.Context(), session.Token)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load exercise names")
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// History forwards the raw per-set history rows.
func (h *LiftingHandler) History(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	history, err := h.tracker.ExerciseHistory(r.Context(), session.Token, name, rangeParam(r, "90d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load exercise history")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// Lifting serves the chart-ready progression: same-day sets merged into one
// point with combined volume and best estimated 1RM.
func (h *LiftingHandler) Lifting(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	view, err := h.dashboard.GetLifting(r.Context(), session.Token, name, rangeParam(r, "90d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load lifting progression")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *LiftingHandler) PRs(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	prs, err := h.tracker.ExercisePRs(r.Context(), session.Token)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load exercise prs")
		return
	}
	respondJSON(w, http.StatusOK, prs)
}
