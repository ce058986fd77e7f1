// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/upload"
)

// parseIDParam parses a positive ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid "+paramName, ""))
		return 0, false
	}
	return id, true
}

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a student or coordinator account. Students may attach a resume (.pdf, .doc, .docx, at most 5 MiB) and must verify their e-mail before logging in.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "E-mail address"
// @Param password formData string true "Password"
// @Param role formData string true "student or coordinator"
// @Param name formData string true "Full name"
// @Param department formData string false "Department (students)"
// @Param year formData int false "Year of study (students)"
// @Param rollNumber formData string false "Roll number (students)"
// @Param cgpa formData number false "CGPA (students)"
// @Param employeeId formData string false "Employee ID (coordinators)"
// @Param resume formData file false "Resume"
// @Success 201 {object} dto.RegisterResponse "User registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing field, invalid input, duplicate e-mail or rejected file"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /user/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	input, ok := c.bindRegisterInput(ctx)
	if !ok {
		return
	}

	response, err := c.authService.Register(ctx.Request.Context(), input)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", input.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// bindRegisterInput reads the multipart form; plain form or JSON bodies are
// accepted too and simply carry no file
func (c *AuthController) bindRegisterInput(ctx *gin.Context) (*dto.RegisterInput, bool) {
	input := &dto.RegisterInput{}

	form, err := ctx.MultipartForm()
	switch {
	case err == nil:
		defer func() {
			if rmErr := form.RemoveAll(); rmErr != nil {
				c.logger.Warn().Err(rmErr).Msg("Failed to remove multipart temp files")
			}
		}()
		input.Files = form.File
	case errors.Is(err, http.ErrNotMultipart):
	default:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.HandleAPIError(ctx, apperrors.NewFileUploadError(upload.MsgFileTooLarge))
			return nil, false
		}
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return nil, false
	}

	if err := ctx.ShouldBind(&input.RegisterForm); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return nil, false
	}
	return input, true
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns a 24 hour session token with a role-shaped profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing input or invalid credentials"
// @Failure 401 {object} dto.ErrorResponse "Student e-mail not verified"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /user/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	// An unreadable body counts as missing credentials
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Debug().Err(err).Msg("Login body could not be decoded")
		req = dto.LoginRequest{}
	}

	response, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", response.User.ID).Msg("User logged in successfully")
	ctx.JSON(http.StatusOK, response)
}

// VerifyEmail handles email verification
// @Summary Verify e-mail address
// @Description Consumes the token mailed at registration and marks the student verified
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} dto.MessageResponse "Email verified successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /user/verify/{token} [get]
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	if err := c.authService.VerifyEmail(ctx.Request.Context(), ctx.Param("token")); err != nil {
		c.logger.Warn().Err(err).Msg("Email verification failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified successfully. You can now log in."})
}

// ResendVerification handles resending the verification e-mail
// @Summary Resend verification e-mail
// @Description Issues a fresh verification token for an unverified student. Unknown addresses receive the same response.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendVerificationRequest true "E-mail address"
// @Success 200 {object} dto.MessageResponse "Verification e-mail sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /user/resend-verification [post]
func (c *AuthController) ResendVerification(ctx *gin.Context) {
	var req dto.ResendVerificationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ResendVerification(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "If the account exists, a verification email has been sent"})
}
