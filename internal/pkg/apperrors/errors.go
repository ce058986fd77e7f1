package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidRole      = errors.New("invalid role")
	ErrBadRequest       = errors.New("bad request")

	// Rate limiting
	ErrRateLimited = errors.New("too many requests")

	// Upload errors
	ErrFileUpload = errors.New("file upload error")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// Placement errors
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrJobListingNotFound  = errors.New("job listing not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidApplicant    = errors.New("invalid student or job listing")
	ErrCourseMismatch      = errors.New("student course does not match job requirements")
	ErrAlreadyApplied      = errors.New("student has already applied to this job listing")
	ErrDriveAfterJoining   = errors.New("campus drive date cannot be after joining date")
	ErrInvalidStatus       = errors.New("invalid application status")
)

// Email verification errors
var (
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrInvalidEmailToken = errors.New("invalid or expired email verification token")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	// Field names the offending input, if any
	Field string
	// Detail is operator-facing and not shown to clients in production
	Detail string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField records the offending field
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// NewMissingFieldError reports the first required field that was absent
func NewMissingFieldError(field string) error {
	return &CustomError{
		Err:     ErrMissingField,
		Message: fmt.Sprintf("Missing required field: %s", field),
		Field:   field,
	}
}

// NewValidationError creates a validation error with a client-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewFileUploadError wraps an upload rejection; the cause is shown as the error detail
func NewFileUploadError(cause string) error {
	return &CustomError{
		Err:     ErrFileUpload,
		Message: "File upload error",
		Detail:  cause,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
