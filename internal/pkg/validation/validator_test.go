package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

func TestIsRegistrationEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "student@college.edu", "x.y@sub.domain.in"} {
		if !validation.IsRegistrationEmail(ok) {
			t.Errorf("expected %q to pass", ok)
		}
	}
	for _, bad := range []string{"", "plain", "a@b", "@b.c", "a@.c"} {
		if validation.IsRegistrationEmail(bad) {
			t.Errorf("expected %q to fail", bad)
		}
	}
}

type shift struct {
	Team  string `json:"team" validate:"required,team"`
	Phone string `json:"phone" validate:"omitempty,mobile"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func shiftOrder(sl validator.StructLevel) {
	s := sl.Current().Interface().(shift)
	if s.Start > s.End {
		sl.ReportError(s.Start, "start", "Start", validation.TagDriveBeforeJoining, "")
	}
}

func newShiftValidator() *validation.Validator {
	return validation.New(
		validation.WithTag("team", func(v string) bool { return strings.HasPrefix(v, "T-") }),
		validation.WithStructRule(shiftOrder, shift{}),
	)
}

func TestValidator_InjectedTag(t *testing.T) {
	v := newShiftValidator()
	if err := v.Struct(shift{Team: "T-1", Start: 1, End: 2}); err != nil {
		t.Fatalf("expected valid shift, got %v", err)
	}

	err := v.Struct(shift{Team: "ops", Start: 1, End: 2})
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || !errors.Is(err, apperrors.ErrValidationFailed) || custom.Field != "team" {
		t.Fatalf("expected team field error, got %v", err)
	}
	if err.Error() != "team validation failed: team" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidator_InjectedStructRule(t *testing.T) {
	err := newShiftValidator().Struct(shift{Team: "T-1", Start: 3, End: 2})
	if !errors.Is(err, apperrors.ErrDriveAfterJoining) {
		t.Fatalf("expected ErrDriveAfterJoining, got %v", err)
	}
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || custom.Field != "start" {
		t.Fatalf("expected start field, got %v", err)
	}
}

func TestValidator_UnregisteredTagPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a tag that was never registered")
		}
	}()
	_ = validation.New().Struct(shift{Team: "T-1"})
}

func TestValidator_Mobile(t *testing.T) {
	v := newShiftValidator()
	if err := v.Struct(shift{Team: "T-1", Phone: "+919876543210"}); err != nil {
		t.Fatalf("expected valid phone, got %v", err)
	}
	err := v.Struct(shift{Team: "T-1", Phone: "12-34"})
	if err == nil || err.Error() != "Invalid phone number" {
		t.Fatalf("expected phone number error, got %v", err)
	}
}
