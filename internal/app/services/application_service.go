package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/events"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// Eligibility messages
const (
	MsgInvalidApplicant = "Invalid student or job listing"
	MsgCourseMismatch   = "Student course does not match job requirements"
)

// ApplicationService defines the interface for placement application operations
type ApplicationService interface {
	Apply(ctx context.Context, studentID, jobListingID int64) (*models.PlacementApplication, error)
	UpdateStatus(ctx context.Context, id int64, req *dto.UpdateApplicationStatusRequest) (*models.PlacementApplication, error)
	GetByID(ctx context.Context, id int64) (*models.PlacementApplication, error)
	List(ctx context.Context, filter dto.ApplicationFilter) (*dto.ApplicationListResponse, error)
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationRepo *repositories.ApplicationRepository
	studentRepo     *repositories.StudentRepository
	listingRepo     *repositories.JobListingRepository
	publisher       events.Publisher
	now             func() time.Time
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	listingRepo *repositories.JobListingRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		listingRepo:     listingRepo,
		publisher:       publisher,
		now:             time.Now,
		logger:          logger,
	}
}

// CheckEligibility loads both parties of an application and verifies that
// the student's course is among the listing's required streams
func (s *applicationServiceImpl) CheckEligibility(ctx context.Context, studentID, jobListingID int64) (*models.Student, *models.JobListing, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, nil, fmt.Errorf("error loading student: %w", err)
	}
	listing, lerr := s.listingRepo.GetByID(ctx, jobListingID)
	if lerr != nil && !errors.Is(lerr, apperrors.ErrJobListingNotFound) {
		return nil, nil, fmt.Errorf("error loading job listing: %w", lerr)
	}
	if student == nil || listing == nil {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrInvalidApplicant, MsgInvalidApplicant)
	}

	if !listing.AcceptsCourse(student.Course) {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrCourseMismatch, MsgCourseMismatch)
	}
	return student, listing, nil
}

// Apply creates an application once the student is eligible. A second
// application for the same pair is rejected by the store as a conflict.
func (s *applicationServiceImpl) Apply(ctx context.Context, studentID, jobListingID int64) (*models.PlacementApplication, error) {
	if _, _, err := s.CheckEligibility(ctx, studentID, jobListingID); err != nil {
		return nil, err
	}

	app := &models.PlacementApplication{
		StudentID:     studentID,
		JobListingID:  jobListingID,
		CurrentStatus: models.StatusApplied,
		AppliedAt:     s.now().UTC(),
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("studentID", studentID).
		Int64("jobListingID", jobListingID).
		Msg("Placement application created")
	publishEvent(ctx, s.publisher, s.logger, events.ApplicationCreated, s.event(app))
	return app, nil
}

// UpdateStatus moves an application through the hiring rounds
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateApplicationStatusRequest) (*models.PlacementApplication, error) {
	if !req.Status.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, "Invalid application status").WithField("status")
	}
	if len(req.RoundResults) > 0 && !json.Valid(req.RoundResults) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "roundResults must be valid JSON").WithField("roundResults")
	}

	if err := s.applicationRepo.UpdateStatus(ctx, id, req.Status, req.RoundResults); err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.ApplicationStatusChanged, s.event(app))
	return app, nil
}

// GetByID retrieves an application together with its student and listing
func (s *applicationServiceImpl) GetByID(ctx context.Context, id int64) (*models.PlacementApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if app.Student, err = s.studentRepo.GetByID(ctx, app.StudentID); err != nil {
		return nil, fmt.Errorf("error loading student: %w", err)
	}
	if app.JobListing, err = s.listingRepo.GetByID(ctx, app.JobListingID); err != nil {
		return nil, fmt.Errorf("error loading job listing: %w", err)
	}
	return app, nil
}

// List returns one page of applications
func (s *applicationServiceImpl) List(ctx context.Context, filter dto.ApplicationFilter) (*dto.ApplicationListResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, "Invalid application status").WithField("status")
	}

	apps, total, err := s.applicationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ApplicationListResponse{
		Applications: apps,
		Pagination:   helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}

func (s *applicationServiceImpl) event(app *models.PlacementApplication) events.ApplicationEvent {
	return events.ApplicationEvent{
		ApplicationID: app.ID,
		StudentID:     app.StudentID,
		JobListingID:  app.JobListingID,
		Status:        string(app.CurrentStatus),
		OccurredAt:    s.now().UTC(),
	}
}
