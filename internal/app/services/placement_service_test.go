package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/events"
	"github.com/yigit/placement-portal/internal/testutil"
)

type placementHarness struct {
	repos        *repositories.Repositories
	listings     services.JobListingService
	students     services.StudentService
	applications services.ApplicationService
}

func newPlacementHarness(t *testing.T) *placementHarness {
	t.Helper()

	repos := repositories.NewRepositories(testutil.NewSQLiteDB(t))
	v := services.NewValidator()
	return &placementHarness{
		repos:    repos,
		listings: services.NewJobListingService(repos.JobListingRepository, v, zerolog.Nop()),
		students: services.NewStudentService(repos.StudentRepository, auth.NewPasswordHasher(testutil.BcryptCost), v, zerolog.Nop()),
		applications: services.NewApplicationService(
			repos.ApplicationRepository,
			repos.StudentRepository,
			repos.JobListingRepository,
			events.NewLogPublisher(zerolog.Nop()),
			zerolog.Nop(),
		),
	}
}

func amount(v float64) *float64 { return &v }

func listingRequest(streams ...string) *dto.JobListingRequest {
	return &dto.JobListingRequest{
		CompanyName:           "Acme Corp",
		TypeOfDrive:           "CAMPUS",
		DateOfCampusDrive:     "2025-01-10",
		StreamRequired:        streams,
		BatchYear:             "2025",
		JobPosition:           "Software Engineer",
		JobLocation:           "Bengaluru",
		DateOfJoining:         "2025-07-01",
		PayPackage:            amount(1200000),
		SalaryAfterInternship: amount(1200000),
	}
}

func studentRequest(universityID, email, course string) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		FullName:        "Asha Rao",
		UniversityID:    universityID,
		UniversityEmail: email,
		Course:          course,
		Password:        "secret123",
	}
}

func TestJobListingService_CreateValidatesDates(t *testing.T) {
	ctx := context.Background()
	h := newPlacementHarness(t)

	listing, err := h.listings.Create(ctx, listingRequest("B.Tech"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.ID == 0 || listing.DateOfCampusDrive.After(listing.DateOfJoining) {
		t.Fatalf("unexpected listing: %+v", listing)
	}

	sameDay := listingRequest("B.Tech")
	sameDay.DateOfJoining = sameDay.DateOfCampusDrive
	if _, err := h.listings.Create(ctx, sameDay); err != nil {
		t.Fatalf("same-day drive and joining should be accepted: %v", err)
	}

	late := listingRequest("B.Tech")
	late.DateOfCampusDrive = "2025-08-01"
	_, err = h.listings.Create(ctx, late)
	expectCustomError(t, err, apperrors.ErrDriveAfterJoining, "Campus drive date cannot be after joining date")

	missing := listingRequest("B.Tech")
	missing.DateOfJoining = ""
	_, err = h.listings.Create(ctx, missing)
	expectCustomError(t, err, apperrors.ErrMissingField, "Missing required field: dateOfJoining")

	garbled := listingRequest("B.Tech")
	garbled.DateOfCampusDrive = "next tuesday"
	_, err = h.listings.Create(ctx, garbled)
	expectCustomError(t, err, apperrors.ErrValidationFailed, "")
}

func TestJobListingService_CreateRejectsBadEnums(t *testing.T) {
	h := newPlacementHarness(t)

	tests := []struct {
		name   string
		mutate func(r *dto.JobListingRequest)
	}{
		{"drive type", func(r *dto.JobListingRequest) { r.TypeOfDrive = "WALKIN" }},
		{"batch year", func(r *dto.JobListingRequest) { r.BatchYear = "2019" }},
		{"stream", func(r *dto.JobListingRequest) { r.StreamRequired = []string{"Astrology"} }},
		{"pay package", func(r *dto.JobListingRequest) { r.PayPackage = nil }},
		{"company", func(r *dto.JobListingRequest) { r.CompanyName = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := listingRequest("B.Tech")
			tt.mutate(req)
			_, err := h.listings.Create(context.Background(), req)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestJobListingService_UpdateRevalidatesMergedListing(t *testing.T) {
	ctx := context.Background()
	h := newPlacementHarness(t)

	listing, err := h.listings.Create(ctx, listingRequest("B.Tech"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// only the drive date moves, past the stored joining date
	lateDrive := "2025-09-01"
	_, err = h.listings.Update(ctx, listing.ID, &dto.UpdateJobListingRequest{DateOfCampusDrive: &lateDrive})
	expectCustomError(t, err, apperrors.ErrDriveAfterJoining, "")

	stored, err := h.listings.GetByID(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.DateOfCampusDrive.Equal(listing.DateOfCampusDrive) {
		t.Fatal("rejected update must not be persisted")
	}

	location := "Pune"
	updated, err := h.listings.Update(ctx, listing.ID, &dto.UpdateJobListingRequest{
		JobLocation:    &location,
		StreamRequired: []string{"B.Tech", "MCA"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.JobLocation != "Pune" || updated.CompanyName != "Acme Corp" || !updated.AcceptsCourse(models.CourseMCA) {
		t.Fatalf("unexpected merge result: %+v", updated)
	}

	if _, err := h.listings.Update(ctx, 999, &dto.UpdateJobListingRequest{JobLocation: &location}); !errors.Is(err, apperrors.ErrJobListingNotFound) {
		t.Fatalf("expected ErrJobListingNotFound, got %v", err)
	}
}

func TestJobListingService_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	h := newPlacementHarness(t)

	first, err := h.listings.Create(ctx, listingRequest("B.Tech"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := h.listings.Create(ctx, listingRequest("MCA")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := h.listings.List(ctx, dto.JobListingFilter{Stream: "MCA", Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.JobListings) != 1 || resp.Pagination.TotalItems != 1 {
		t.Fatalf("unexpected page: %+v", resp.Pagination)
	}

	if err := h.listings.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := h.listings.GetByID(ctx, first.ID); !errors.Is(err, apperrors.ErrJobListingNotFound) {
		t.Fatalf("expected ErrJobListingNotFound, got %v", err)
	}
}

func TestStudentService_Create(t *testing.T) {
	ctx := context.Background()
	h := newPlacementHarness(t)

	student, err := h.students.Create(ctx, studentRequest("U1", " Asha@College.edu", "B.Tech"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if student.UniversityEmail != "asha@college.edu" {
		t.Fatalf("email not normalized: %q", student.UniversityEmail)
	}
	if student.Password == "secret123" {
		t.Fatal("password stored in clear text")
	}

	_, err = h.students.Create(ctx, studentRequest("U1", "other@college.edu", "B.Tech"))
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	bad := studentRequest("U2", "u2@college.edu", "Alchemy")
	if _, err := h.students.Create(ctx, bad); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for course, got %v", err)
	}
	noPassword := studentRequest("U3", "u3@college.edu", "MCA")
	noPassword.Password = ""
	if _, err := h.students.Create(ctx, noPassword); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for password, got %v", err)
	}

	resp, err := h.students.List(ctx, dto.StudentFilter{Course: "B.Tech", Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Students) != 1 || resp.Students[0].ID != student.ID {
		t.Fatalf("unexpected students: %+v", resp.Students)
	}
}

func TestApplicationService_Eligibility(t *testing.T) {
	ctx := context.Background()
	h := newPlacementHarness(t)

	btech, err := h.students.Create(ctx, studentRequest("U1", "u1@college.edu", "B.Tech"))
	if err != nil {
		t.Fatalf("Create student: %v", err)
	}
	mca, err := h.students.Create(ctx, studentRequest("U2", "u2@college.edu", "MCA"))
	if err != nil {
		t.Fatalf("Create student: %v", err)
	}
	listing, err := h.listings.Create(ctx, listingRequest("B.Tech", "CSE"))
	if err != nil {
		t.Fatalf("Create listing: %v", err)
	}

	t.Run("unknown student", func(t *testing.T) {
		_, err := h.applications.Apply(ctx, 999, listing.ID)
		expectCustomError(t, err, apperrors.ErrInvalidApplicant, services.MsgInvalidApplicant)
	})
	t.Run("unknown listing", func(t *testing.T) {
		_, err := h.applications.Apply(ctx, btech.ID, 999)
		expectCustomError(t, err, apperrors.ErrInvalidApplicant, services.MsgInvalidApplicant)
	})
	t.Run("course mismatch", func(t *testing.T) {
		_, err := h.applications.Apply(ctx, mca.ID, listing.ID)
		expectCustomError(t, err, apperrors.ErrCourseMismatch, services.MsgCourseMismatch)
	})

	app, err := h.applications.Apply(ctx, btech.ID, listing.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.CurrentStatus != models.StatusApplied {
		t.Fatalf("status = %s, want APPLIED", app.CurrentStatus)
	}

	_, err = h.applications.Apply(ctx, btech.ID, listing.ID)
	if !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied on second application, got %v", err)
	}
	count, err := h.repos.ApplicationRepository.CountFor(ctx, btech.ID, listing.ID)
	if err != nil {
		t.Fatalf("CountFor: %v", err)
	}
	if count != 1 {
		t.Fatalf("found %d applications, want 1", count)
	}
}

func TestApplicationService_StatusAndLookup(t *testing.T) {
	ctx := context.Background()
	h := newPlacementHarness(t)

	student, err := h.students.Create(ctx, studentRequest("U1", "u1@college.edu", "B.Tech"))
	if err != nil {
		t.Fatalf("Create student: %v", err)
	}
	listing, err := h.listings.Create(ctx, listingRequest("B.Tech"))
	if err != nil {
		t.Fatalf("Create listing: %v", err)
	}
	app, err := h.applications.Apply(ctx, student.ID, listing.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	_, err = h.applications.UpdateStatus(ctx, app.ID, &dto.UpdateApplicationStatusRequest{Status: "HIRED"})
	expectCustomError(t, err, apperrors.ErrInvalidStatus, "")

	_, err = h.applications.UpdateStatus(ctx, app.ID, &dto.UpdateApplicationStatusRequest{
		Status:       models.StatusRound1,
		RoundResults: json.RawMessage(`{broken`),
	})
	expectCustomError(t, err, apperrors.ErrValidationFailed, "")

	updated, err := h.applications.UpdateStatus(ctx, app.ID, &dto.UpdateApplicationStatusRequest{
		Status:       models.StatusSelected,
		RoundResults: json.RawMessage(`{"Interview":"passed"}`),
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.CurrentStatus != models.StatusSelected {
		t.Fatalf("status = %s", updated.CurrentStatus)
	}

	full, err := h.applications.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if full.Student == nil || full.Student.ID != student.ID || full.JobListing == nil || full.JobListing.ID != listing.ID {
		t.Fatalf("expected student and listing to be loaded: %+v", full)
	}

	if _, err := h.applications.List(ctx, dto.ApplicationFilter{Status: "HIRED"}); !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	resp, err := h.applications.List(ctx, dto.ApplicationFilter{Status: models.StatusSelected, Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Applications) != 1 {
		t.Fatalf("got %d applications, want 1", len(resp.Applications))
	}

	if _, err := h.applications.UpdateStatus(ctx, 999, &dto.UpdateApplicationStatusRequest{Status: models.StatusRejected}); !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
