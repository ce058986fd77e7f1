package auth

import (
	"context"
	"errors"

	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/logger"
)

// ErrNotCoordinator is returned when a placement-cell action is attempted by another role
var ErrNotCoordinator = errors.New("only coordinators can perform this action")

// AuthorizationService checks roles against the stored account rather than
// the token alone, so a removed or re-roled account loses access at once
type AuthorizationService struct {
	userRepo *repositories.UserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// IsCoordinator checks if the user is a coordinator
func (s *AuthorizationService) IsCoordinator(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in IsCoordinator")
		return false, err
	}
	return user.Role == models.RoleCoordinator, nil
}

// ValidateCoordinator returns a permission error unless the user is a coordinator
func (s *AuthorizationService) ValidateCoordinator(ctx context.Context, userID int64) error {
	isCoordinator, err := s.IsCoordinator(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewCustomError(apperrors.ErrPermissionDenied, "Account no longer exists")
		}
		return err
	}
	if !isCoordinator {
		return apperrors.NewCustomError(apperrors.ErrPermissionDenied, ErrNotCoordinator.Error())
	}
	return nil
}
