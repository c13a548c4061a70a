package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fitweb/fitweb/internal/config"
	"github.com/fitweb/fitweb/internal/db"
	"github.com/fitweb/fitweb/internal/repository"
	"github.com/fitweb/fitweb/internal/service"
	"github.com/fitweb/fitweb/internal/upstream"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Tracker          *upstream.Client
	SessionService   *service.SessionService
	DashboardService *service.DashboardService
	SummaryService   *service.SummaryService
	LogbookService   *service.LogbookService

	stop chan struct{}
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	sessionRepository := repository.NewSessionRepository(database)

	// Tracker API client
	tracker := upstream.New(cfg.TrackerAPIURL)

	// Services
	sessionService := service.NewSessionService(
		sessionRepository,
		tracker,
		cfg.SessionSecret,
		cfg.SessionExpiry,
		cfg.IsProduction(),
	)
	// Any upstream auth failure invalidates the session that made the call.
	tracker.OnUnauthorized = sessionService.InvalidateFromContext

	dashboardService := service.NewDashboardService(tracker)
	summaryService := service.NewSummaryService(tracker)
	logbookService := service.NewLogbookService(tracker)

	stop := make(chan struct{})
	go expireSessions(sessionRepository, time.Hour, stop)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Tracker:          tracker,
		SessionService:   sessionService,
		DashboardService: dashboardService,
		SummaryService:   summaryService,
		LogbookService:   logbookService,
		stop:             stop,
	}, nil
}

func (a *App) Close() error {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	return db.Close(a.DB)
}

// expireSessions sweeps expired session rows until stop is closed. Expired
// rows are also dropped lazily on lookup; this keeps abandoned ones from
// piling up.
func expireSessions(sessions repository.SessionRepository, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired()
			if err != nil {
				slog.Error("expire sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}
