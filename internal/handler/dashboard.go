package handler

import (
	"net/http"

	"github.com/fitweb/fitweb/internal/ctxkeys"
	"github.com/fitweb/fitweb/internal/service"
	"github.com/fitweb/fitweb/internal/upstream"
)

// DashboardHandler serves the chart and KPI reads. Every route here sits
// behind RequireSession, so the session in context is always present.
type DashboardHandler struct {
	dashboard *service.DashboardService
	summary   *service.SummaryService
	sessions  *service.SessionService
	tracker   *upstream.Client
}

func NewDashboardHandler(
	dashboard *service.DashboardService,
	summary *service.SummaryService,
	sessions *service.SessionService,
	tracker *upstream.Client,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		summary:   summary,
		sessions:  sessions,
		tracker:   tracker,
	}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	overview, err := h.dashboard.GetOverview(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load overview")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *DashboardHandler) Kpis(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	kpis, err := h.tracker.Kpis(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load kpis")
		return
	}
	respondJSON(w, http.StatusOK, kpis)
}

func (h *DashboardHandler) Meals(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	meals, err := h.tracker.Meals(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load meals")
		return
	}
	respondJSON(w, http.StatusOK, meals)
}

func (h *DashboardHandler) Weight(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	weight, err := h.tracker.Weight(r.Context(), session.Token, rangeParam(r, "30d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load weight")
		return
	}
	respondJSON(w, http.StatusOK, weight)
}

func (h *DashboardHandler) CalorieBalance(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	balance, err := h.tracker.CalorieBalance(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load calorie balance")
		return
	}
	respondJSON(w, http.StatusOK, balance)
}

func (h *DashboardHandler) Wellness(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	wellness, err := h.tracker.Wellness(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load wellness")
		return
	}
	respondJSON(w, http.StatusOK, wellness)
}

func (h *DashboardHandler) Performance(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	performance, err := h.tracker.Performance(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load performance")
		return
	}
	respondJSON(w, http.StatusOK, performance)
}

func (h *DashboardHandler) Dates(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	dates, err := h.tracker.Dates(r.Context(), session.Token, rangeParam(r, "7d"))
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load dates")
		return
	}
	respondJSON(w, http.StatusOK, dates)
}

func (h *DashboardHandler) Daily(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	date := r.URL.Query().Get("date")
	if date == "" {
		respondError(w, http.StatusBadRequest, "date is required")
		return
	}
	daily, err := h.dashboard.GetDaily(r.Context(), session.Token, date)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load daily snapshot")
		return
	}
	respondJSON(w, http.StatusOK, daily)
}

func (h *DashboardHandler) WorkoutSummary(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	date := r.URL.Query().Get("date")
	if date == "" {
		respondError(w, http.StatusBadRequest, "date is required")
		return
	}
	summary, err := h.tracker.WorkoutSummary(r.Context(), session.Token, date)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load workout summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Summary is the slow AI read; the SPA requests it separately from the
// overview so the charts never wait on it.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	summary, err := h.summary.GetWeeklySummary(r.Context(), session.Token)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load weekly summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
