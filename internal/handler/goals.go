package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fitweb/fitweb/internal/ctxkeys"
	"github.com/fitweb/fitweb/internal/model"
	"github.com/fitweb/fitweb/internal/service"
	"github.com/fitweb/fitweb/internal/upstream"
)

type GoalsHandler struct {
	dashboard *service.DashboardService
	sessions  *service.SessionService
	tracker   *upstream.Client
}

func NewGoalsHandler(dashboard *service.DashboardService, sessions *service.SessionService, tracker *upstream.Client) *GoalsHandler {
	return &GoalsHandler{dashboard: dashboard, sessions: sessions, tracker: tracker}
}

func (h *GoalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	goals, err := h.tracker.Goals(r.Context(), session.Token)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load goals")
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// Update replaces the goals wholesale; there are no partial-field semantics.
func (h *GoalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	var goals model.Goals
	err := json.NewDecoder(r.Body).Decode(&goals)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid goals payload")
		return
	}

	err = h.tracker.UpdateGoals(r.Context(), session.Token, &goals)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to update goals")
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalsHandler) BMI(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	report, err := h.dashboard.GetBMI(r.Context(), session.Token)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to compute bmi")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *GoalsHandler) GoalDelta(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	report, err := h.dashboard.GetGoalDelta(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to compute goal delta")
		return
	}
	respondJSON(w, http.StatusOK, report)
}
