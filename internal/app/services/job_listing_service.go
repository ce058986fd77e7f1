package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

// JobListingService defines the interface for recruitment drive operations
type JobListingService interface {
	Create(ctx context.Context, req *dto.JobListingRequest) (*models.JobListing, error)
	Update(ctx context.Context, id int64, req *dto.UpdateJobListingRequest) (*models.JobListing, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.JobListing, error)
	List(ctx context.Context, filter dto.JobListingFilter) (*dto.JobListingListResponse, error)
}

// jobListingServiceImpl implements JobListingService
type jobListingServiceImpl struct {
	listingRepo *repositories.JobListingRepository
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewJobListingService creates a new JobListingService
func NewJobListingService(
	listingRepo *repositories.JobListingRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) JobListingService {
	return &jobListingServiceImpl{
		listingRepo: listingRepo,
		validator:   validator,
		logger:      logger,
	}
}

// Create validates and stores a new listing
func (s *jobListingServiceImpl) Create(ctx context.Context, req *dto.JobListingRequest) (*models.JobListing, error) {
	driveDate, err := parseDateField("dateOfCampusDrive", req.DateOfCampusDrive)
	if err != nil {
		return nil, err
	}
	joiningDate, err := parseDateField("dateOfJoining", req.DateOfJoining)
	if err != nil {
		return nil, err
	}

	listing := &models.JobListing{
		CompanyName:             strings.TrimSpace(req.CompanyName),
		CompanyWebsite:          strings.TrimSpace(req.CompanyWebsite),
		CompanyLogo:             req.CompanyLogo,
		TypeOfDrive:             models.DriveType(req.TypeOfDrive),
		DateOfCampusDrive:       driveDate,
		StreamRequired:          req.StreamRequired,
		EligibilityCriteria:     req.EligibilityCriteria,
		BatchYear:               req.BatchYear,
		JobPosition:             strings.TrimSpace(req.JobPosition),
		JobLocation:             strings.TrimSpace(req.JobLocation),
		DateOfJoining:           joiningDate,
		PayPackage:              req.PayPackage,
		StipendDuringInternship: req.StipendDuringInternship,
		SalaryAfterInternship:   req.SalaryAfterInternship,
		AnyBond:                 req.AnyBond,
		PlacementProcess:        req.PlacementProcess,
		ApplyLink:               strings.TrimSpace(req.ApplyLink),
	}

	if err := s.validator.Struct(listing); err != nil {
		return nil, err
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("error creating job listing: %w", err)
	}

	s.logger.Info().Int64("jobListingID", listing.ID).Str("company", listing.CompanyName).Msg("Job listing created")
	return listing, nil
}

// Update merges the present fields into the stored listing and validates the
// result before writing it, so the date rule also holds for partial updates
func (s *jobListingServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateJobListingRequest) (*models.JobListing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mergeJobListing(listing, req); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(listing); err != nil {
		return nil, err
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobListingID", listing.ID).Msg("Job listing updated")
	return listing, nil
}

func mergeJobListing(listing *models.JobListing, req *dto.UpdateJobListingRequest) error {
	if req.DateOfCampusDrive != nil {
		t, err := parseDateField("dateOfCampusDrive", *req.DateOfCampusDrive)
		if err != nil {
			return err
		}
		listing.DateOfCampusDrive = t
	}
	if req.DateOfJoining != nil {
		t, err := parseDateField("dateOfJoining", *req.DateOfJoining)
		if err != nil {
			return err
		}
		listing.DateOfJoining = t
	}

	setString(&listing.CompanyName, req.CompanyName)
	setString(&listing.CompanyWebsite, req.CompanyWebsite)
	setString(&listing.BatchYear, req.BatchYear)
	setString(&listing.JobPosition, req.JobPosition)
	setString(&listing.JobLocation, req.JobLocation)
	setString(&listing.AnyBond, req.AnyBond)
	setString(&listing.ApplyLink, req.ApplyLink)

	if req.CompanyLogo != nil {
		listing.CompanyLogo = req.CompanyLogo
	}
	if req.TypeOfDrive != nil {
		listing.TypeOfDrive = models.DriveType(*req.TypeOfDrive)
	}
	if req.StreamRequired != nil {
		listing.StreamRequired = req.StreamRequired
	}
	if req.EligibilityCriteria != nil {
		listing.EligibilityCriteria = req.EligibilityCriteria
	}
	if req.PayPackage != nil {
		listing.PayPackage = req.PayPackage
	}
	if req.StipendDuringInternship != nil {
		listing.StipendDuringInternship = req.StipendDuringInternship
	}
	if req.SalaryAfterInternship != nil {
		listing.SalaryAfterInternship = req.SalaryAfterInternship
	}
	if req.PlacementProcess != nil {
		listing.PlacementProcess = req.PlacementProcess
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func parseDateField(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, apperrors.NewMissingFieldError(field)
	}
	t, err := helpers.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewCustomError(apperrors.ErrValidationFailed, field+" must be a date (YYYY-MM-DD or RFC 3339)").
			WithField(field)
	}
	return t, nil
}

// Delete removes a listing and its applications
func (s *jobListingServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("jobListingID", id).Msg("Job listing deleted")
	return nil
}

// GetByID retrieves a listing
func (s *jobListingServiceImpl) GetByID(ctx context.Context, id int64) (*models.JobListing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

// List returns one page of listings
func (s *jobListingServiceImpl) List(ctx context.Context, filter dto.JobListingFilter) (*dto.JobListingListResponse, error) {
	listings, total, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.JobListingListResponse{
		JobListings: listings,
		Pagination:  helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}
