// Package seed creates the default data a fresh installation needs
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
)

// DefaultCoordinatorName is the display name of the seeded account
const DefaultCoordinatorName = "Placement Coordinator"

// DefaultCoordinatorEmployeeID is the employee ID of the seeded account
const DefaultCoordinatorEmployeeID = "PC-0001"

// CreateDefaultCoordinator makes sure a coordinator account exists so that
// job listings can be published on a fresh database
func CreateDefaultCoordinator(ctx context.Context, userRepo *repositories.UserRepository, hasher *auth.PasswordHasher, email, password string, lgr zerolog.Logger) error {
	if email == "" || password == "" {
		lgr.Info().Msg("Default coordinator credentials not configured, skipping seed")
		return nil
	}

	exists, err := userRepo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking default coordinator: %w", err)
	}
	if exists {
		lgr.Debug().Str("email", email).Msg("Default coordinator already exists")
		return nil
	}

	hashed, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("error hashing default coordinator password: %w", err)
	}

	user := &models.User{
		Email:      email,
		Password:   hashed,
		Role:       models.RoleCoordinator,
		IsVerified: true,
		Profile: &models.CoordinatorProfile{
			BaseProfile: models.BaseProfile{Name: DefaultCoordinatorName},
			EmployeeID:  DefaultCoordinatorEmployeeID,
		},
	}
	if err := userRepo.Create(ctx, user); err != nil {
		// Another instance seeded first
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("error creating default coordinator: %w", err)
	}

	lgr.Info().Int64("userID", user.ID).Str("email", email).Msg("Default coordinator created")
	return nil
}
