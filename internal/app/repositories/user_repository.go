package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/db"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/dberrors"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// UserRepository is the credential store for portal accounts. A user row and
// its role profile row are always written together.
type UserRepository struct {
	db *db.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.DB) *UserRepository {
	return &UserRepository{db: database}
}

var userColumns = []string{
	"u.id", "u.email", "u.password", "u.role", "u.is_verified", "u.name", "u.image",
	"u.created_at", "u.updated_at",
	"sp.department", "sp.year", "sp.roll_number", "sp.cgpa", "sp.resume",
	"cp.employee_id",
}

func (r *UserRepository) selectUsers() sq.SelectBuilder {
	return r.db.Builder().
		Select(userColumns...).
		From("users u").
		LeftJoin("student_profiles sp ON sp.user_id = u.id").
		LeftJoin("coordinator_profiles cp ON cp.user_id = u.id")
}

// Create inserts the user and its profile in one transaction and sets user.ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx db.Querier) error {
		return r.CreateTx(ctx, tx, user)
	})
}

// CreateTx inserts the user and its profile using q, which should be a transaction.
// A duplicate e-mail surfaces as apperrors.ErrEmailAlreadyExists.
func (r *UserRepository) CreateTx(ctx context.Context, q db.Querier, user *models.User) error {
	if user.Profile == nil || user.Profile.Role() != user.Role {
		return fmt.Errorf("user profile does not match role %q", user.Role)
	}

	now := time.Now().UTC()
	base := user.Profile.Base()

	query, args, err := r.db.Builder().
		Insert("users").
		Columns("email", "password", "role", "is_verified", "name", "image", "created_at", "updated_at").
		Values(user.Email, user.Password, string(user.Role), user.IsVerified, base.Name, helpers.GetNullString(base.Image), now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		if dberrors.UniqueViolationOn(err, "email") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	var profileInsert sq.InsertBuilder
	switch p := user.Profile.(type) {
	case *models.StudentProfile:
		profileInsert = r.db.Builder().
			Insert("student_profiles").
			Columns("user_id", "department", "year", "roll_number", "cgpa", "resume").
			Values(user.ID, p.Department, p.Year, p.RollNumber, p.CGPA, helpers.GetNullString(p.Resume))
	case *models.CoordinatorProfile:
		profileInsert = r.db.Builder().
			Insert("coordinator_profiles").
			Columns("user_id", "employee_id").
			Values(user.ID, p.EmployeeID)
	default:
		return fmt.Errorf("unsupported profile type %T", user.Profile)
	}

	query, args, err = profileInsert.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error creating %s profile: %w", user.Role, err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByEmail retrieves a user, including the password hash, by e-mail
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"u.email": email})
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"u.id": id})
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := r.selectUsers().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user       models.User
		role       string
		name       string
		image      sql.NullString
		department sql.NullString
		year       sql.NullInt64
		rollNumber sql.NullString
		cgpa       sql.NullFloat64
		resume     sql.NullString
		employeeID sql.NullString
	)

	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &role, &user.IsVerified, &name, &image,
		&user.CreatedAt, &user.UpdatedAt,
		&department, &year, &rollNumber, &cgpa, &resume,
		&employeeID,
	)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role)
	base := models.BaseProfile{Name: name, Image: helpers.StringPtr(image)}

	switch user.Role {
	case models.RoleStudent:
		user.Profile = &models.StudentProfile{
			BaseProfile: base,
			Department:  department.String,
			Year:        int(year.Int64),
			RollNumber:  rollNumber.String,
			CGPA:        cgpa.Float64,
			Resume:      helpers.StringPtr(resume),
		}
	case models.RoleCoordinator:
		user.Profile = &models.CoordinatorProfile{
			BaseProfile: base,
			EmployeeID:  employeeID.String,
		}
	default:
		return nil, fmt.Errorf("unknown role %q for user %d", role, user.ID)
	}

	return &user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := r.db.Builder().
		Select("COUNT(1)").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.SQL.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return count > 0, nil
}

// MarkVerifiedTx flags the user's e-mail as verified
func (r *UserRepository) MarkVerifiedTx(ctx context.Context, q db.Querier, userID int64) error {
	query, args, err := r.db.Builder().
		Update("users").
		Set("is_verified", true).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error verifying user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ResumeReferences returns every resume location referenced by a user profile
func (r *UserRepository) ResumeReferences(ctx context.Context) ([]string, error) {
	query, args, err := r.db.Builder().
		Select("resume").
		From("student_profiles").
		Where(sq.NotEq{"resume": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return queryStrings(ctx, r.db.SQL, query, args...)
}

func queryStrings(ctx context.Context, q db.Querier, query string, args ...interface{}) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying references: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("error scanning reference: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
