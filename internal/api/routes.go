package api

import (
	"github.com/gin-gonic/gin"

	"sinkdns/internal/api/handlers"
	"sinkdns/internal/api/middleware"
	"sinkdns/internal/config"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	api := r.Group("/api/v1")

	// Optional API key protection; /health stays public for probes.
	api.GET("/health", h.Health)

	protected := api.Group("")
	if cfg != nil && cfg.API.APIKey != "" {
		protected.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	protected.GET("/stats", h.Stats)
	protected.GET("/config", h.GetConfig)
}
