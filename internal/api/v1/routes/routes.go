package routes

import (
	"github.com/gin-gonic/gin"

	"speech2text/internal/api/v1/handlers"
	"speech2text/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptService services.TranscriptService
	MaxUploadBytes    int64
}

// RegisterRoutes registers the transcript API at the router root
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	transcriptHandler := handlers.NewTranscriptHandler(container.TranscriptService, container.MaxUploadBytes)

	router.POST("/upload-audio", transcriptHandler.Upload)
	router.GET("/transcript/:id", transcriptHandler.Get)
	router.DELETE("/transcript/:id", transcriptHandler.Delete)
	router.GET("/transcripts", transcriptHandler.List)
	router.GET("/transcripts/export", transcriptHandler.Export)

	router.GET("/health", handlers.Health)
}
