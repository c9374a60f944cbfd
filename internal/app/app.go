package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stoamedia/wisdom-backend/internal/observability"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Router   *gin.Engine
	Services Services
}

// New builds the fully wired application. It blocks until corpus ingestion
// finishes; an ingestion failure means no App and no listener.
func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig(log)

	clients, err := wireClients(log, cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init clients: %w", err)
	}

	var (
		registry *prometheus.Registry
		metrics  *observability.Metrics
	)
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		metrics = observability.New(registry)
	}

	services, err := wireServices(ctx, log, cfg, clients, metrics)
	if err != nil {
		log.Sync()
		return nil, err
	}

	router := wireRouter(RouterConfig{
		Log:            log,
		Handlers:       wireHandlers(services),
		Metrics:        metrics,
		Registry:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	return &App{
		Log:      log,
		Cfg:      cfg,
		Router:   router,
		Services: services,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil || a.Log == nil {
		return
	}
	a.Log.Sync()
}
