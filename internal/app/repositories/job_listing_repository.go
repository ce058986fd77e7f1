package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/db"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// JobListingRepository persists recruitment drives
type JobListingRepository struct {
	db *db.DB
}

// NewJobListingRepository creates a new JobListingRepository
func NewJobListingRepository(database *db.DB) *JobListingRepository {
	return &JobListingRepository{db: database}
}

var jobListingColumns = []string{
	"id", "company_name", "company_website", "company_logo", "type_of_drive", "date_of_campus_drive",
	"stream_required", "eligibility_criteria", "batch_year", "job_position", "job_location",
	"date_of_joining", "pay_package", "stipend_during_internship", "salary_after_internship",
	"any_bond", "placement_process", "apply_link", "created_at", "updated_at",
}

type jobListingJSON struct {
	streams     string
	eligibility string
	process     string
}

func encodeJobListingJSON(listing *models.JobListing) (jobListingJSON, error) {
	var out jobListingJSON
	var err error
	if out.streams, err = helpers.ToJSONText(listing.StreamRequired); err != nil {
		return out, err
	}
	if out.eligibility, err = helpers.ToJSONText(listing.EligibilityCriteria); err != nil {
		return out, err
	}
	if out.process, err = helpers.ToJSONText(listing.PlacementProcess); err != nil {
		return out, err
	}
	return out, nil
}

// Create inserts a listing and sets its ID
func (r *JobListingRepository) Create(ctx context.Context, listing *models.JobListing) error {
	encoded, err := encodeJobListingJSON(listing)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query, args, err := r.db.Builder().
		Insert("job_listings").
		Columns(jobListingColumns[1:]...).
		Values(
			listing.CompanyName, helpers.GetContentNullString(listing.CompanyWebsite), helpers.GetNullString(listing.CompanyLogo),
			string(listing.TypeOfDrive), listing.DateOfCampusDrive.UTC(),
			encoded.streams, encoded.eligibility, listing.BatchYear, listing.JobPosition, listing.JobLocation,
			listing.DateOfJoining.UTC(), helpers.NullFloat(listing.PayPackage), helpers.NullFloat(listing.StipendDuringInternship),
			helpers.NullFloat(listing.SalaryAfterInternship), helpers.GetContentNullString(listing.AnyBond),
			encoded.process, helpers.GetContentNullString(listing.ApplyLink), now, now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.SQL.QueryRowContext(ctx, query, args...).Scan(&listing.ID); err != nil {
		return fmt.Errorf("error creating job listing: %w", err)
	}

	listing.CreatedAt = now
	listing.UpdatedAt = now
	return nil
}

// Update overwrites every mutable column of the listing
func (r *JobListingRepository) Update(ctx context.Context, listing *models.JobListing) error {
	encoded, err := encodeJobListingJSON(listing)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query, args, err := r.db.Builder().
		Update("job_listings").
		SetMap(map[string]interface{}{
			"company_name":              listing.CompanyName,
			"company_website":           helpers.GetContentNullString(listing.CompanyWebsite),
			"company_logo":              helpers.GetNullString(listing.CompanyLogo),
			"type_of_drive":             string(listing.TypeOfDrive),
			"date_of_campus_drive":      listing.DateOfCampusDrive.UTC(),
			"stream_required":           encoded.streams,
			"eligibility_criteria":      encoded.eligibility,
			"batch_year":                listing.BatchYear,
			"job_position":              listing.JobPosition,
			"job_location":              listing.JobLocation,
			"date_of_joining":           listing.DateOfJoining.UTC(),
			"pay_package":               helpers.NullFloat(listing.PayPackage),
			"stipend_during_internship": helpers.NullFloat(listing.StipendDuringInternship),
			"salary_after_internship":   helpers.NullFloat(listing.SalaryAfterInternship),
			"any_bond":                  helpers.GetContentNullString(listing.AnyBond),
			"placement_process":         encoded.process,
			"apply_link":                helpers.GetContentNullString(listing.ApplyLink),
			"updated_at":                now,
		}).
		Where(sq.Eq{"id": listing.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating job listing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrJobListingNotFound
	}

	listing.UpdatedAt = now
	return nil
}

// Delete removes a listing and, through the foreign key, its applications
func (r *JobListingRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.db.Builder().
		Delete("job_listings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting job listing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrJobListingNotFound
	}
	return nil
}

// GetByID retrieves a listing by ID
func (r *JobListingRepository) GetByID(ctx context.Context, id int64) (*models.JobListing, error) {
	query, args, err := r.db.Builder().
		Select(jobListingColumns...).
		From("job_listings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	listing, err := scanJobListing(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrJobListingNotFound
		}
		return nil, fmt.Errorf("error getting job listing: %w", err)
	}
	return listing, nil
}

// List returns one page of listings, newest drive first, and the total count
func (r *JobListingRepository) List(ctx context.Context, filter dto.JobListingFilter) ([]*models.JobListing, int64, error) {
	where := sq.And{}
	if filter.Stream != "" {
		// streams are stored as a JSON array of strings
		where = append(where, sq.Like{"stream_required": "%" + strconv.Quote(filter.Stream) + "%"})
	}
	if filter.BatchYear != "" {
		where = append(where, sq.Eq{"batch_year": filter.BatchYear})
	}

	total, err := count(ctx, r.db, "job_listings", where)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	query, args, err := r.db.Builder().
		Select(jobListingColumns...).
		From("job_listings").
		Where(where).
		OrderBy("date_of_campus_drive DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing job listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*models.JobListing, 0)
	for rows.Next() {
		listing, err := scanJobListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning job listing: %w", err)
		}
		listings = append(listings, listing)
	}
	return listings, total, rows.Err()
}

func scanJobListing(row rowScanner) (*models.JobListing, error) {
	var (
		j           models.JobListing
		driveType   string
		website     sql.NullString
		logo        sql.NullString
		streams     sql.NullString
		eligibility sql.NullString
		pay         sql.NullFloat64
		stipend     sql.NullFloat64
		salary      sql.NullFloat64
		bond        sql.NullString
		process     sql.NullString
		applyLink   sql.NullString
	)

	err := row.Scan(
		&j.ID, &j.CompanyName, &website, &logo, &driveType, &j.DateOfCampusDrive,
		&streams, &eligibility, &j.BatchYear, &j.JobPosition, &j.JobLocation,
		&j.DateOfJoining, &pay, &stipend, &salary,
		&bond, &process, &applyLink, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	j.TypeOfDrive = models.DriveType(driveType)
	j.CompanyWebsite = website.String
	j.CompanyLogo = helpers.StringPtr(logo)
	j.PayPackage = helpers.FloatPtr(pay)
	j.StipendDuringInternship = helpers.FloatPtr(stipend)
	j.SalaryAfterInternship = helpers.FloatPtr(salary)
	j.AnyBond = bond.String
	j.ApplyLink = applyLink.String
	j.StreamRequired = []string{}
	j.EligibilityCriteria = []string{}
	j.PlacementProcess = []models.PlacementRound{}
	if err := helpers.FromJSONText(streams, &j.StreamRequired); err != nil {
		return nil, err
	}
	if err := helpers.FromJSONText(eligibility, &j.EligibilityCriteria); err != nil {
		return nil, err
	}
	if err := helpers.FromJSONText(process, &j.PlacementProcess); err != nil {
		return nil, err
	}
	return &j, nil
}
