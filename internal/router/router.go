package router

import (
	"github.com/gin-gonic/gin"

	"pdfworker/internal/handler"
	"pdfworker/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(extractH *handler.ExtractHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Multipart upload endpoints
	api := r.Group("/api")
	api.POST("/extract", extractH.Extract)
	api.POST("/detect-text-layer", extractH.DetectTextLayer)

	// Generic worker envelope (base64 mode)
	r.POST("/process", extractH.Process)

	return r
}
