package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/auth"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/websocket"
)

// FeedController streams placement events to coordinators
type FeedController struct {
	hub    *websocket.Hub
	authz  *auth.AuthorizationService
	logger zerolog.Logger
}

// NewFeedController creates a new FeedController
func NewFeedController(hub *websocket.Hub, authz *auth.AuthorizationService, logger zerolog.Logger) *FeedController {
	return &FeedController{
		hub:    hub,
		authz:  authz,
		logger: logger,
	}
}

// Subscribe upgrades the connection to a websocket event feed
// @Summary Live placement event feed
// @Description Streams registration and application events as JSON frames of the form {"type","payload","occurredAt"}.
// @Tags events
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /ws/events [get]
func (c *FeedController) Subscribe(ctx *gin.Context) {
	if !requireCoordinator(ctx, c.authz) {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	// the upgrader has already written the failure response
	if err := c.hub.Serve(ctx.Writer, ctx.Request, userID); err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Event feed subscription failed")
	}
}
