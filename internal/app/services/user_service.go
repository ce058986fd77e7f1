package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/repositories"
)

// UserService defines the interface for account lookups
type UserService interface {
	GetUserProfile(ctx context.Context, userID int64) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUserProfile retrieves the account of an authenticated user
func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile of user %d: %w", userID, err)
	}
	return user, nil
}
