package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement-portal/internal/app/models/dto"
)

// HealthController answers liveness probes
type HealthController struct{}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{}
}

// TestingServer reports that the process is serving requests
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /testing-server [get]
func (c *HealthController) TestingServer(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Success: true, Message: "Server is testing"})
}
