package main

import (
	"github.com/gin-gonic/gin"
	"github.com/reviewlens/backend/internal/handlers"
	"github.com/reviewlens/backend/internal/middleware"
	"github.com/reviewlens/backend/pkg/logger"
)

func registerRoutes(router *gin.Engine, app *appServices) {
	router.Use(logger.GinLogger())
	router.Use(logger.GinRecovery())
	router.Use(middleware.CORS())

	analyzeHandler := handlers.NewAnalyzeHandler(app.review, app.queue, &app.cfg.Upload)
	reviewHandler := handlers.NewReviewHandler(app.store)
	compareHandler := handlers.NewCompareHandler(app.compare)
	statsHandler := handlers.NewStatisticsHandler(app.stats, app.trends)
	healthHandler := handlers.NewHealthHandler(app.db, app.store, app.queue)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")
	{
		// Analysis endpoints hit the LLM, so they carry the rate limit.
		analyze := api.Group("")
		analyze.Use(middleware.RateLimit(30))
		{
			analyze.POST("/review", analyzeHandler.Review)
			analyze.POST("/batch-review", analyzeHandler.BatchReview)
		}

		api.GET("/reviews", reviewHandler.List)
		api.DELETE("/reviews", reviewHandler.DeleteAll)
		api.GET("/reviews/search", reviewHandler.Search)
		api.POST("/reviews/compare", compareHandler.Compare)
		api.GET("/reviews/:id", reviewHandler.Get)
		api.DELETE("/reviews/:id", reviewHandler.Delete)
		api.GET("/reviews/:id/export", reviewHandler.Export)

		api.GET("/statistics", statsHandler.Statistics)
		api.GET("/trends", statsHandler.Trends)
	}
}
