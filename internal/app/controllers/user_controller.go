package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/middleware"
)

// UserController serves the authenticated user's own account
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetUserProfile retrieves the profile of the authenticated user
// @Summary Get user profile
// @Description Returns the account and full stored profile of the caller
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/profile [get]
func (c *UserController) GetUserProfile(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	user, err := c.userService.GetUserProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserProfileResponse(user))
}
