package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/db"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/email"
	"github.com/yigit/placement-portal/internal/pkg/events"
	"github.com/yigit/placement-portal/internal/pkg/upload"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

// Client-facing auth messages
const (
	MsgRegistered          = "User registered successfully"
	MsgEmailRegistered     = "Email already registered"
	MsgCredentialsRequired = "Email and password are required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgVerifyEmail         = "Please verify your email"
)

// DefaultVerificationTTL is how long an e-mail verification link stays valid
const DefaultVerificationTTL = 24 * time.Hour

// AuthService defines the registration and login workflows
type AuthService interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	database   *db.DB
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.VerificationTokenRepository
	gate       *upload.Gate
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	mailer     email.EmailService
	publisher  events.Publisher
	tokenTTL   time.Duration
	now        func() time.Time
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	database *db.DB,
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.VerificationTokenRepository,
	gate *upload.Gate,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	mailer email.EmailService,
	publisher events.Publisher,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultVerificationTTL
	}
	return &authServiceImpl{
		database:   database,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		gate:       gate,
		hasher:     hasher,
		jwtService: jwtService,
		mailer:     mailer,
		publisher:  publisher,
		tokenTTL:   tokenTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// NormalizeEmail trims and lowercases an address before it is stored or looked up
func NormalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Register creates an account. The resume, if any, is stored first and
// deleted again on every path that does not end with a persisted user.
func (s *authServiceImpl) Register(ctx context.Context, input *dto.RegisterInput) (*dto.RegisterResponse, error) {
	claim, err := s.gate.Accept(ctx, input.Files)
	if err != nil {
		return nil, err
	}
	defer claim.Release(ctx)

	form := input.RegisterForm
	form.Email = NormalizeEmail(form.Email)

	user, err := buildUser(&form, claim)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, MsgEmailRegistered).WithField("email")
	}

	hashed, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	var verification *models.EmailVerificationToken
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx db.Querier) error {
		if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		if !user.RequiresVerification() {
			return nil
		}
		verification = s.newVerificationToken(user.ID)
		return s.tokenRepo.CreateTx(ctx, tx, verification)
	})
	if err != nil {
		// the unique index catches registrations racing past the pre-check
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, MsgEmailRegistered).WithField("email")
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	// only a student profile references the resume; a coordinator's upload is released
	hasResume := false
	if profile, ok := user.StudentProfile(); ok && profile.Resume != nil {
		claim.Keep()
		hasResume = true
	}

	if verification != nil {
		if err := s.mailer.SendVerificationEmail(user.Email, user.Name(), verification.Token); err != nil {
			s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send verification email")
		}
	}
	publishEvent(ctx, s.publisher, s.logger, events.UserRegistered, events.UserRegisteredEvent{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       string(user.Role),
		HasResume:  hasResume,
		OccurredAt: s.now().UTC(),
	})

	token, err := s.jwtService.IssueToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return &dto.RegisterResponse{
		Message: MsgRegistered,
		Token:   token,
		User:    dto.NewUserSummary(user),
	}, nil
}

type formField struct {
	name  string
	value string
}

// requireFields fails on the first blank field, in order
func requireFields(fields ...formField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.NewMissingFieldError(f.name)
		}
	}
	return nil
}

// buildUser validates the form and assembles the user with its role profile
func buildUser(form *dto.RegisterForm, claim *upload.Claim) (*models.User, error) {
	if err := requireFields(
		formField{"email", form.Email},
		formField{"password", form.Password},
		formField{"role", form.Role},
		formField{"name", form.Name},
	); err != nil {
		return nil, err
	}

	role := models.Role(strings.TrimSpace(form.Role))
	if !role.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidRole, "Invalid role").WithField("role")
	}

	switch role {
	case models.RoleStudent:
		if err := requireFields(
			formField{"department", form.Department},
			formField{"year", form.Year},
			formField{"rollNumber", form.RollNumber},
			formField{"cgpa", form.CGPA},
		); err != nil {
			return nil, err
		}
	case models.RoleCoordinator:
		if err := requireFields(formField{"employeeId", form.EmployeeID}); err != nil {
			return nil, err
		}
	}

	if !validation.IsRegistrationEmail(form.Email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, "Please provide a valid email").WithField("email")
	}

	base := models.BaseProfile{Name: strings.TrimSpace(form.Name)}
	user := &models.User{Email: form.Email, Role: role}

	switch role {
	case models.RoleStudent:
		year, err := strconv.Atoi(strings.TrimSpace(form.Year))
		if err != nil || year <= 0 {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid year").WithField("year")
		}
		cgpa, err := strconv.ParseFloat(strings.TrimSpace(form.CGPA), 64)
		if err != nil || cgpa < 0 {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid cgpa").WithField("cgpa")
		}

		profile := &models.StudentProfile{
			BaseProfile: base,
			Department:  strings.TrimSpace(form.Department),
			Year:        year,
			RollNumber:  strings.TrimSpace(form.RollNumber),
			CGPA:        cgpa,
		}
		if location := claim.Location(); location != "" {
			profile.Resume = &location
		}
		user.Profile = profile
	case models.RoleCoordinator:
		user.IsVerified = true
		user.Profile = &models.CoordinatorProfile{
			BaseProfile: base,
			EmployeeID:  strings.TrimSpace(form.EmployeeID),
		}
	}

	return user, nil
}

func (s *authServiceImpl) newVerificationToken(userID int64) *models.EmailVerificationToken {
	return &models.EmailVerificationToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.tokenTTL).UTC(),
	}
}

// Login authenticates a user. Unknown e-mails and wrong passwords produce the
// same error after the same amount of hashing work.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrMissingField, MsgCredentialsRequired)
	}

	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("error finding user: %w", err)
		}
		s.hasher.CompareDummy(req.Password)
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
	}

	if user.RequiresVerification() {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailNotVerified, MsgVerifyEmail)
	}

	token, err := s.jwtService.IssueToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			UserSummary: dto.NewUserSummary(user),
			Profile:     dto.NewProfileView(user),
		},
	}, nil
}

// VerifyEmail consumes a verification token and marks its user verified
func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmailToken, "Invalid or expired verification token")
	}

	record, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.NewCustomError(apperrors.ErrInvalidEmailToken, "Invalid or expired verification token")
		}
		return fmt.Errorf("error getting verification token: %w", err)
	}
	if record.Expired(s.now()) {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmailToken, "Invalid or expired verification token")
	}

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx db.Querier) error {
		if err := s.userRepo.MarkVerifiedTx(ctx, tx, record.UserID); err != nil {
			return err
		}
		return s.tokenRepo.DeleteByUserTx(ctx, tx, record.UserID)
	})
}

// ResendVerification mails a fresh token to an unverified student. Unknown and
// already verified addresses succeed silently so the response is identical
// whether or not an account exists.
func (s *authServiceImpl) ResendVerification(ctx context.Context, address string) error {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(address))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("error finding user: %w", err)
	}
	if !user.RequiresVerification() {
		return nil
	}

	verification := s.newVerificationToken(user.ID)
	if err := s.tokenRepo.Create(ctx, verification); err != nil {
		return fmt.Errorf("error creating verification token: %w", err)
	}
	return s.mailer.SendVerificationEmail(user.Email, user.Name(), verification.Token)
}
