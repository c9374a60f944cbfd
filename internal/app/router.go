package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stoamedia/wisdom-backend/internal/http/middleware"
	"github.com/stoamedia/wisdom-backend/internal/observability"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Handlers       Handlers
	Metrics        *observability.Metrics
	Registry       *prometheus.Registry
	AllowedOrigins []string
}

func wireRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", cfg.Handlers.Health.HealthCheck)
	if cfg.Metrics != nil && cfg.Registry != nil {
		r.GET("/metrics", gin.WrapH(observability.Handler(cfg.Registry)))
	}

	api := r.Group("/api")
	{
		api.POST("/wisdom", cfg.Handlers.Wisdom.GenerateWisdom)
	}
	return r
}
