package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/api/handlers"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/api/middleware"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, svcs *service.Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Candle Pricing & Variant Engine",
			"endpoints": []string{
				"GET /health",
				"GET /v1/vessels",
				"GET /v1/vessels/check",
				"POST /v1/vessels",
				"POST /v1/vessels/:id/sync",
				"GET /v1/waxes",
				"GET /v1/wicks",
				"GET /v1/variants",
				"GET /v1/variants/export",
				"POST /v1/pricing/preview",
				"POST /v1/pricing/apply",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes: everything is operator-facing and requires the admin key
	v1 := router.Group("/v1")
	v1.Use(middleware.AdminAuthMiddleware(cfg.API.AdminKeyHash, logger))
	{
		v1.GET("/vessels", handlers.HandleListVessels(repos, logger))
		v1.GET("/vessels/check", handlers.HandleCheckVessel(svcs, logger))
		v1.POST("/vessels", handlers.HandleRegisterVessel(svcs, logger))
		v1.POST("/vessels/:id/sync", handlers.HandleSyncVessel(svcs, repos, logger))
		v1.DELETE("/vessels/:id", handlers.HandleDeactivateVessel(svcs, logger))

		v1.GET("/waxes", handlers.HandleListWaxes(repos, logger))
		v1.POST("/waxes", handlers.HandleCreateWax(repos, logger))
		v1.PUT("/waxes/:name/cost", handlers.HandleUpdateWaxCost(repos, logger))
		v1.POST("/waxes/:name/enable", handlers.HandleEnableWax(repos, logger))
		v1.DELETE("/waxes/:name", handlers.HandleDeactivateWax(repos, logger))

		v1.GET("/wicks", handlers.HandleListWicks(repos, logger))
		v1.POST("/wicks", handlers.HandleCreateWick(repos, logger))
		v1.PUT("/wicks/:name/cost", handlers.HandleUpdateWickCost(repos, logger))
		v1.POST("/wicks/:name/enable", handlers.HandleEnableWick(repos, logger))
		v1.DELETE("/wicks/:name", handlers.HandleDeactivateWick(repos, logger))

		v1.GET("/variants", handlers.HandleGetVariantMatrix(svcs, logger))
		v1.GET("/variants/export", handlers.HandleExportVariantMatrix(svcs, logger))

		v1.POST("/pricing/preview", handlers.HandlePricingPreview(svcs, logger))
		v1.POST("/pricing/apply", handlers.HandlePricingApply(svcs, logger))
		v1.POST("/pricing/cancel", handlers.HandlePricingCancel(svcs, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
