package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace/internal/api/middleware"
)

// SetupRoutes configures all REST API routes.
// writeMiddleware runs after authentication on every state-changing route.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, writeMiddleware ...gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Marketplace parameters (public read access)
		v1.GET("/marketplace", handler.GetMarketplaceInfo)

		// Asset endpoints (public read access)
		v1.GET("/assets", handler.ListAssets)
		v1.GET("/assets/:id", handler.GetAsset)
		v1.GET("/assets/:id/history", handler.GetSaleHistory)

		// Account endpoints (public read access)
		v1.GET("/accounts/:address/balance", handler.GetBalance)

		// State-changing endpoints act on behalf of the authenticated caller
		writes := v1.Group("", append([]gin.HandlerFunc{middleware.Auth(authCfg)}, writeMiddleware...)...)
		writes.POST("/assets", handler.MintAsset)
		writes.POST("/assets/:id/listing", handler.ListAsset)
		writes.DELETE("/assets/:id/listing", handler.CancelListing)
		writes.POST("/assets/:id/purchase", handler.PurchaseAsset)
	}
}
