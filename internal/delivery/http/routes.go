package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/sareefinder/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		recommendations := v1.Group("/recommendations")
		{
			recommendations.POST("/search", handler.SearchRecommendations)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.ListCatalog)
			catalog.GET("/facets", handler.CatalogFacets)
			catalog.GET("/items/:id", handler.GetCatalogItem)
		}

		conversations := v1.Group("/conversations")
		{
			conversations.POST("", handler.StartConversation)
			conversations.GET("/:id", handler.GetConversation)
			conversations.POST("/:id/messages", handler.SendMessage)
		}
	}

	return router
}
