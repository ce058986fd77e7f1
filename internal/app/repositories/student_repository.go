package repositories

import (
	"context"
	"database/sql"
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

// StudentRepository persists placement-side student profiles
type StudentRepository struct {
	db *db.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.DB) *StudentRepository {
	return &StudentRepository{db: database}
}

var studentColumns = []string{
	"id", "full_name", "university_id", "university_email", "personal_email", "phone_number",
	"course", "password", "profile_image", "bio", "resume", "skills", "projects", "social_links",
	"created_at", "updated_at",
}

// Create inserts a student; unique universityId or universityEmail violations
// surface as apperrors.ErrConflict naming the field
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	skills, err := helpers.ToJSONText(student.Skills)
	if err != nil {
		return err
	}
	projects, err := helpers.ToJSONText(student.Projects)
	if err != nil {
		return err
	}
	links, err := helpers.ToJSONText(student.SocialLinks)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query, args, err := r.db.Builder().
		Insert("students").
		Columns(studentColumns[1:]...).
		Values(
			student.FullName, student.UniversityID, student.UniversityEmail,
			helpers.GetContentNullString(student.PersonalEmail), helpers.GetContentNullString(student.PhoneNumber),
			string(student.Course), student.Password, helpers.GetNullString(student.ProfileImage),
			helpers.GetContentNullString(student.Bio), helpers.GetNullString(student.Resume),
			skills, projects, links, now, now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.SQL.QueryRowContext(ctx, query, args...).Scan(&student.ID); err != nil {
		switch {
		case dberrors.UniqueViolationOn(err, "university_id"):
			return apperrors.NewCustomError(apperrors.ErrConflict, "University ID already exists").WithField("universityId")
		case dberrors.UniqueViolationOn(err, "university_email"):
			return apperrors.NewCustomError(apperrors.ErrConflict, "University email already exists").WithField("universityEmail")
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	student.CreatedAt = now
	student.UpdatedAt = now
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.db.Builder().
		Select(studentColumns...).
		From("students").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	student, err := scanStudent(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// List returns one page of students and the total count
func (r *StudentRepository) List(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, int64, error) {
	where := sq.And{}
	if filter.Course != "" {
		where = append(where, sq.Eq{"course": filter.Course})
	}

	total, err := count(ctx, r.db, "students", where)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	query, args, err := r.db.Builder().
		Select(studentColumns...).
		From("students").
		Where(where).
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}
	return students, total, rows.Err()
}

// ResumeReferences returns every resume location referenced by a student
func (r *StudentRepository) ResumeReferences(ctx context.Context) ([]string, error) {
	query, args, err := r.db.Builder().
		Select("resume").
		From("students").
		Where(sq.NotEq{"resume": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return queryStrings(ctx, r.db.SQL, query, args...)
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		s             models.Student
		course        string
		personalEmail sql.NullString
		phoneNumber   sql.NullString
		profileImage  sql.NullString
		bio           sql.NullString
		resume        sql.NullString
		skills        sql.NullString
		projects      sql.NullString
		socialLinks   sql.NullString
	)

	err := row.Scan(
		&s.ID, &s.FullName, &s.UniversityID, &s.UniversityEmail, &personalEmail, &phoneNumber,
		&course, &s.Password, &profileImage, &bio, &resume, &skills, &projects, &socialLinks,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Course = models.Course(course)
	s.PersonalEmail = personalEmail.String
	s.PhoneNumber = phoneNumber.String
	s.ProfileImage = helpers.StringPtr(profileImage)
	s.Bio = bio.String
	s.Resume = helpers.StringPtr(resume)
	s.Skills = []string{}
	s.Projects = []models.Project{}
	if err := helpers.FromJSONText(skills, &s.Skills); err != nil {
		return nil, err
	}
	if err := helpers.FromJSONText(projects, &s.Projects); err != nil {
		return nil, err
	}
	if err := helpers.FromJSONText(socialLinks, &s.SocialLinks); err != nil {
		return nil, err
	}
	return &s, nil
}

func count(ctx context.Context, database *db.DB, table string, where sq.Sqlizer) (int64, error) {
	query, args, err := database.Builder().
		Select("COUNT(1)").
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := database.SQL.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return total, nil
}
