package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/db"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/dberrors"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// ApplicationRepository persists placement applications
type ApplicationRepository struct {
	db *db.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(database *db.DB) *ApplicationRepository {
	return &ApplicationRepository{db: database}
}

var applicationColumns = []string{
	"id", "student_id", "job_listing_id", "current_status", "round_results",
	"applied_at", "created_at", "updated_at",
}

func roundResultsValue(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 || string(raw) == "null" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

// Create inserts an application. The unique (student_id, job_listing_id)
// index decides concurrent duplicates; the loser gets apperrors.ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.PlacementApplication) error {
	now := time.Now().UTC()
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	if app.CurrentStatus == "" {
		app.CurrentStatus = models.StatusApplied
	}

	query, args, err := r.db.Builder().
		Insert("placement_applications").
		Columns(applicationColumns[1:]...).
		Values(app.StudentID, app.JobListingID, string(app.CurrentStatus), roundResultsValue(app.RoundResults),
			app.AppliedAt.UTC(), now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.SQL.QueryRowContext(ctx, query, args...).Scan(&app.ID); err != nil {
		if dberrors.UniqueViolationOn(err, "job_listing_id") {
			return apperrors.NewCustomError(apperrors.ErrAlreadyApplied, "Student has already applied to this job listing")
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	app.CreatedAt = now
	app.UpdatedAt = now
	return nil
}

// UpdateStatus moves an application to status and replaces its round results
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, roundResults json.RawMessage) error {
	update := r.db.Builder().
		Update("placement_applications").
		Set("current_status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	if roundResults != nil {
		update = update.Set("round_results", roundResultsValue(roundResults))
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.PlacementApplication, error) {
	query, args, err := r.db.Builder().
		Select(applicationColumns...).
		From("placement_applications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	app, err := scanApplication(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return app, nil
}

// List returns one page of applications matching filter and the total count
func (r *ApplicationRepository) List(ctx context.Context, filter dto.ApplicationFilter) ([]*models.PlacementApplication, int64, error) {
	where := sq.And{}
	if filter.StudentID > 0 {
		where = append(where, sq.Eq{"student_id": filter.StudentID})
	}
	if filter.JobListingID > 0 {
		where = append(where, sq.Eq{"job_listing_id": filter.JobListingID})
	}
	if filter.Status != "" {
		where = append(where, sq.Eq{"current_status": string(filter.Status)})
	}

	total, err := count(ctx, r.db, "placement_applications", where)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	query, args, err := r.db.Builder().
		Select(applicationColumns...).
		From("placement_applications").
		Where(where).
		OrderBy("applied_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*models.PlacementApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, total, rows.Err()
}

// CountFor returns how many applications exist for a student and listing pair
func (r *ApplicationRepository) CountFor(ctx context.Context, studentID, jobListingID int64) (int64, error) {
	return count(ctx, r.db, "placement_applications", sq.Eq{
		"student_id":     studentID,
		"job_listing_id": jobListingID,
	})
}

func scanApplication(row rowScanner) (*models.PlacementApplication, error) {
	var (
		app     models.PlacementApplication
		status  string
		results sql.NullString
	)

	err := row.Scan(&app.ID, &app.StudentID, &app.JobListingID, &status, &results,
		&app.AppliedAt, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}

	app.CurrentStatus = models.ApplicationStatus(status)
	if results.Valid && results.String != "" {
		app.RoundResults = json.RawMessage(results.String)
	}
	return &app, nil
}
