package routes

import (
	"io/fs"
	"net/http"
	"strings"

	fitweb "github.com/fitweb/fitweb"
	"github.com/fitweb/fitweb/internal/app"
	"github.com/fitweb/fitweb/internal/handler"
	"github.com/fitweb/fitweb/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.SessionService, app.LogbookService)
	dashboard := handler.NewDashboardHandler(app.DashboardService, app.SummaryService, app.SessionService, app.Tracker)
	lifting := handler.NewLiftingHandler(app.DashboardService, app.SessionService, app.Tracker)
	goals := handler.NewGoalsHandler(app.DashboardService, app.SessionService, app.Tracker)
	logbook := handler.NewLogbookHandler(app.LogbookService, app.SessionService)

	mux := http.NewServeMux()

	// ============================================================================
	// DASHBOARD APP (static SPA build)
	// ============================================================================

	dist, _ := fs.Sub(fitweb.DashboardFS, "web/dist")
	mux.Handle("GET /assets/", http.FileServerFS(dist))

	serveIndex := func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, dist, "index.html")
	}
	mux.HandleFunc("GET /{$}", serveIndex)

	// ============================================================================
	// AUTH
	// ============================================================================

	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /api/auth/callback", rateLimiter(auth.Callback))
	mux.HandleFunc("GET /api/auth/me", middleware.RequireSession(auth.Me))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED API
	// ============================================================================

	// Dashboard reads
	mux.HandleFunc("GET /api/overview", middleware.RequireSession(dashboard.Overview))
	mux.HandleFunc("GET /api/kpis", middleware.RequireSession(dashboard.Kpis))
	mux.HandleFunc("GET /api/meals", middleware.RequireSession(dashboard.Meals))
	mux.HandleFunc("GET /api/weight", middleware.RequireSession(dashboard.Weight))
	mux.HandleFunc("GET /api/calorie-balance", middleware.RequireSession(dashboard.CalorieBalance))
	mux.HandleFunc("GET /api/wellness", middleware.RequireSession(dashboard.Wellness))
	mux.HandleFunc("GET /api/performance", middleware.RequireSession(dashboard.Performance))
	mux.HandleFunc("GET /api/dates", middleware.RequireSession(dashboard.Dates))
	mux.HandleFunc("GET /api/daily", middleware.RequireSession(dashboard.Daily))
	mux.HandleFunc("GET /api/workout-summary", middleware.RequireSession(dashboard.WorkoutSummary))
	mux.HandleFunc("GET /api/summary", middleware.RequireSession(dashboard.Summary))

	// Lifting
	mux.HandleFunc("GET /api/exercises", middleware.RequireSession(lifting.Exercises))
	mux.HandleFunc("GET /api/exercise-names", middleware.RequireSession(lifting.ExerciseNames))
	mux.HandleFunc("GET /api/exercise-history", middleware.RequireSession(lifting.History))
	mux.HandleFunc("GET /api/exercise-prs", middleware.RequireSession(lifting.PRs))
	mux.HandleFunc("GET /api/lifting", middleware.RequireSession(lifting.Lifting))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireSession(goals.Get))
	mux.HandleFunc("PUT /api/goals", middleware.RequireSession(goals.Update))
	mux.HandleFunc("GET /api/bmi", middleware.RequireSession(goals.BMI))
	mux.HandleFunc("GET /api/goal-delta", middleware.RequireSession(goals.GoalDelta))

	// Log history edit flow
	mux.HandleFunc("GET /api/log-history", middleware.RequireSession(logbook.List))
	mux.HandleFunc("GET /api/log/{type}/{id}/fields", middleware.RequireSession(logbook.Fields))
	mux.HandleFunc("PUT /api/log/{type}/{id}", middleware.RequireSession(logbook.Update))
	mux.HandleFunc("DELETE /api/log/{type}/{id}", middleware.RequireSession(logbook.Delete))
	mux.HandleFunc("POST /api/log/cancel", middleware.RequireSession(logbook.Cancel))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// Client-side routes fall through to the SPA shell; unknown API paths 404.
	mux.HandleFunc("GET /{path...}", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		serveIndex(w, r)
	})

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.SessionMiddleware(app.SessionService),
	)

	return handler
}
