package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/matchday/fixtures-dashboard/internal/config"
	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/infrastructure/repository/memory"
	"github.com/matchday/fixtures-dashboard/internal/infrastructure/source"
	"github.com/matchday/fixtures-dashboard/internal/interfaces/httpapi"
	"github.com/matchday/fixtures-dashboard/internal/platform/cache"
	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
	"github.com/matchday/fixtures-dashboard/internal/platform/resilience"
	"github.com/matchday/fixtures-dashboard/internal/usecase"
)

// App wires the document source, snapshot store, and services behind
// one HTTP server, and owns the background load/refresh lifecycle.
type App struct {
	Server *http.Server

	cfg       config.Config
	logger    *logging.Logger
	ingestion *usecase.IngestionService
	refresher *usecase.RefreshService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	snapshots := memory.NewSnapshotStore()

	var documents match.DocumentSource
	if cfg.FixturesBaseURL != "" {
		documents = source.NewHTTPSource(source.HTTPSourceConfig{
			BaseURL: cfg.FixturesBaseURL,
			Timeout: cfg.FixturesTimeout,
			Logger:  logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FixturesCircuitEnabled,
				FailureThreshold: cfg.FixturesCircuitFailureCount,
				OpenTimeout:      cfg.FixturesCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FixturesCircuitHalfOpenMaxReq,
			},
		})
		logger.Info("fixtures source configured", "mode", "http", "base_url", cfg.FixturesBaseURL)
	} else {
		documents = source.NewDirSource(cfg.FixturesDir)
		logger.Info("fixtures source configured", "mode", "dir", "dir", cfg.FixturesDir)
	}

	var teamNames *cache.Store
	if cfg.CacheEnabled {
		teamNames = cache.NewStore(cfg.CacheTTL)
	}

	ingestion := usecase.NewIngestionService(documents, snapshots, logger)
	refresher := usecase.NewRefreshService(snapshots, logger, cfg.RefreshInterval)
	views := usecase.NewViewService(snapshots, teamNames)

	handler := httpapi.NewHandler(views, ingestion, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		cfg:       cfg,
		logger:    logger,
		ingestion: ingestion,
		refresher: refresher,
	}, nil
}

// StartBackground runs the initial all-or-nothing load and, once it
// commits, starts the status refresher. The server can accept traffic
// in the meantime; /readyz stays 503 until the load lands.
func (a *App) StartBackground(ctx context.Context) {
	go func() {
		if _, err := a.ingestion.Load(ctx); err != nil {
			return
		}
		a.refresher.Start(ctx)
	}()
}

// Shutdown stops the refresher and drains the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	a.refresher.Stop()
	return a.Server.Shutdown(ctx)
}
