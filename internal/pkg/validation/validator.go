// Package validation holds the shared validator/v10 instance with the
// placement portal's custom tags and struct-level rules.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
)

// TagDriveBeforeJoining is reported by struct rules when a campus drive is
// scheduled after the joining date
const TagDriveBeforeJoining = "drivebeforejoining"

// Validator validates domain records
type Validator struct {
	validate *validator.Validate
}

// Option registers an extra rule on a Validator
type Option func(*validator.Validate)

// WithTag registers a field-level tag that accepts a string when valid returns true
func WithTag(tag string, valid func(string) bool) Option {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}
}

// WithStructRule registers rule for each of the given struct types
func WithStructRule(rule validator.StructLevelFunc, types ...interface{}) Option {
	return func(v *validator.Validate) {
		v.RegisterStructValidation(rule, types...)
	}
}

// New creates a validator with the built-in tags plus opts
func New(opts ...Option) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	UseJSONNames(v)

	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Mobile.MatchString(fl.Field().String())
	})

	for _, opt := range opts {
		opt(v)
	}

	return &Validator{validate: v}
}

// UseJSONNames makes v report json field names so messages match the
// request payload. Also applied to gin's binding validator.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct validates s and converts the first failure into an application error
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError(err.Error())
	}

	first := fieldErrs[0]
	if first.Tag() == TagDriveBeforeJoining {
		return apperrors.NewCustomError(apperrors.ErrDriveAfterJoining, "Campus drive date cannot be after joining date").
			WithField(first.Field())
	}
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, FormatFieldError(first)).
		WithField(first.Field())
}

// Engine exposes the underlying validator for binding integration
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "mobile":
		return "Invalid phone number"
	case "course":
		return e.Field() + " is not a recognised course"
	case "stream":
		return e.Field() + " contains an unknown stream"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
