package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speech2text/internal/api/v1/dto"
)

// Health handles GET /health. It checks no dependencies.
//
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Message: "Speech-to-Text API is running",
	})
}
