package services

import (
	"github.com/go-playground/validator/v10"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

// NewValidator creates the validator used for placement records, with the
// course, stream and drive-date rules registered
func NewValidator() *validation.Validator {
	return validation.New(
		validation.WithTag("course", models.IsCourse),
		validation.WithTag("stream", models.IsStream),
		validation.WithStructRule(jobListingDates, models.JobListing{}),
	)
}

func jobListingDates(sl validator.StructLevel) {
	listing := sl.Current().Interface().(models.JobListing)
	if listing.DateOfCampusDrive.IsZero() || listing.DateOfJoining.IsZero() {
		return
	}
	if listing.DriveAfterJoining() {
		sl.ReportError(listing.DateOfCampusDrive, "dateOfCampusDrive", "DateOfCampusDrive", validation.TagDriveBeforeJoining, "")
	}
}
