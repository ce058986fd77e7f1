package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/logger"
)

// MsgServerError is the body message of every unexpected failure
const MsgServerError = "Server error"

type errorClass struct {
	status   int
	message  string
	sentinel []error
}

// errorClasses are checked in order; the first match decides the status
var errorClasses = []errorClass{
	{http.StatusBadRequest, "Validation failed", []error{
		apperrors.ErrMissingField, apperrors.ErrValidationFailed, apperrors.ErrInvalidEmail,
		apperrors.ErrInvalidRole, apperrors.ErrBadRequest, apperrors.ErrDriveAfterJoining,
		apperrors.ErrInvalidStatus, apperrors.ErrInvalidEmailToken,
	}},
	{http.StatusBadRequest, "Email already registered", []error{apperrors.ErrEmailAlreadyExists}},
	{http.StatusBadRequest, "Invalid credentials", []error{apperrors.ErrInvalidCredentials}},
	{http.StatusBadRequest, "Invalid student or job listing", []error{apperrors.ErrInvalidApplicant}},
	{http.StatusBadRequest, "Student course does not match job requirements", []error{apperrors.ErrCourseMismatch}},
	{http.StatusUnauthorized, "Please verify your email", []error{apperrors.ErrEmailNotVerified}},
	{http.StatusUnauthorized, "Authentication failed", []error{
		apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid, apperrors.ErrTokenNotFound,
	}},
	{http.StatusForbidden, "Permission denied", []error{apperrors.ErrPermissionDenied}},
	{http.StatusNotFound, "User not found", []error{apperrors.ErrUserNotFound}},
	{http.StatusNotFound, "Student not found", []error{apperrors.ErrStudentNotFound}},
	{http.StatusNotFound, "Job listing not found", []error{apperrors.ErrJobListingNotFound}},
	{http.StatusNotFound, "Application not found", []error{apperrors.ErrApplicationNotFound}},
	{http.StatusNotFound, "Resource not found", []error{apperrors.ErrResourceNotFound}},
	{http.StatusConflict, "Student has already applied to this job listing", []error{apperrors.ErrAlreadyApplied}},
	{http.StatusConflict, "Resource already exists", []error{apperrors.ErrConflict}},
	{http.StatusTooManyRequests, "Too many requests, please try again later", []error{apperrors.ErrRateLimited}},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// Unknown errors become a 500 whose detail is only shown outside release mode.
func HandleAPIError(c *gin.Context, err error) {
	status, body := ErrorResponseFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, body)
}

// ErrorResponseFor maps err to an HTTP status and body
func ErrorResponseFor(err error) (int, dto.ErrorResponse) {
	var customErr *apperrors.CustomError
	hasCustom := errors.As(err, &customErr)

	if errors.Is(err, apperrors.ErrFileUpload) {
		detail := ""
		if hasCustom {
			detail = customErr.Detail
		}
		return http.StatusBadRequest, dto.NewErrorResponse("File upload error", detail)
	}

	for _, class := range errorClasses {
		for _, sentinel := range class.sentinel {
			if !errors.Is(err, sentinel) {
				continue
			}
			message := class.message
			if hasCustom && customErr.Message != "" {
				message = customErr.Message
			}
			return class.status, dto.NewErrorResponse(message, "")
		}
	}

	detail := ""
	if gin.Mode() != gin.ReleaseMode {
		detail = err.Error()
	}
	return http.StatusInternalServerError, dto.NewErrorResponse(MsgServerError, detail)
}
