package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"movie-catalog-backend/internal/shared/middleware"
	"movie-catalog-backend/internal/shared/response"
	"movie-catalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(c.Config.App.AllowedOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	// Prometheus scrape endpoint, nằm ngoài /api
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupMovieRoutes(api, c)
		setupCuratedListRoutes(api, c)
	}

	return router
}

// ========================================
// MOVIE ROUTES
// ========================================
func setupMovieRoutes(api *gin.RouterGroup, c *container.Container) {
	movies := api.Group("/movies")
	{
		// Provider search
		movies.GET("/search", c.MovieHandler.SearchMovies)

		// Local read paths
		movies.GET("/searchByGenreAndActor", c.MovieHandler.SearchByGenreAndActor)
		movies.GET("/sort", c.MovieHandler.SortList)
		movies.GET("/top5", c.MovieHandler.TopRated)

		// List membership (body movieId = TMDB id)
		movies.POST("/watchlist", c.MembershipHandler.AddToWatchlist)
		movies.POST("/wishlist", c.MembershipHandler.AddToWishlist)
		movies.POST("/curated-list", c.MembershipHandler.AddToCuratedList)

		// Reviews (:movieId = local id)
		movies.POST("/:movieId/reviews", c.ReviewHandler.AddReview)
		movies.GET("/:movieId/reviews", c.ReviewHandler.ListReviews)
	}
}

// ========================================
// CURATED LIST ROUTES
// ========================================
func setupCuratedListRoutes(api *gin.RouterGroup, c *container.Container) {
	lists := api.Group("/curated-lists")
	{
		lists.POST("", c.CuratedListHandler.Create)
		lists.GET("/:curatedListId", c.CuratedListHandler.GetByID)
		lists.PUT("/:curatedListId", c.CuratedListHandler.Update)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check cache (Redis hoặc in-memory fallback)
		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = fmt.Sprintf("error: %v", err)
			}
		}

		// Schema version từ goose
		if appCtx.DB != nil && appCtx.DB.Pool != nil {
			if version, err := appCtx.DB.SchemaVersion(c.Request.Context()); err == nil {
				health["schema_version"] = version
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
