package dto

import (
	"time"

	"github.com/yigit/placement-portal/internal/app/models"
)

// UserProfileResponse is the authenticated user's own account
type UserProfileResponse struct {
	UserSummary
	IsVerified bool      `json:"isVerified" example:"true"`
	CreatedAt  time.Time `json:"createdAt" example:"2024-01-01T10:00:00Z"`
	// Profile is the full stored student or coordinator profile
	Profile models.Profile `json:"profile"`
}

// NewUserProfileResponse projects user for its owner
func NewUserProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		UserSummary: NewUserSummary(user),
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt,
		Profile:     user.Profile,
	}
}
