package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/skinsight/internal/infra/config"
	"github.com/yanqian/skinsight/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, recorder *metrics.Recorder, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger, recorder),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
	)

	router.GET("/healthz", handler.Health)
	if registry := recorder.Registry(); registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, logger), bodyLimitMiddleware(cfg.HTTP.MaxBodyBytes))
	{
		skin := api.Group("/skin")
		skin.POST("/barrier", handler.BarrierHealth)
		skin.POST("/treatment-response", handler.TreatmentResponse)
		skin.POST("/acne-triggers", handler.AcneTriggers)
		skin.POST("/lifestyle", handler.Lifestyle)
		skin.POST("/medical-alerts", handler.MedicalAlerts)

		api.POST("/weekly/summary", handler.WeeklySummary)

		api.POST("/products/recommendations", handler.Recommendations)
		api.POST("/products/match", handler.Match)
		api.GET("/products/catalog", handler.Catalog)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
