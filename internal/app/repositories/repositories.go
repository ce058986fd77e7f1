package repositories

import (
	"database/sql"
	"errors"

	"github.com/yigit/placement-portal/internal/db"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	VerificationTokenRepository *VerificationTokenRepository
	StudentRepository           *StudentRepository
	JobListingRepository        *JobListingRepository
	ApplicationRepository       *ApplicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.DB) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(database),
		VerificationTokenRepository: NewVerificationTokenRepository(database),
		StudentRepository:           NewStudentRepository(database),
		JobListingRepository:        NewJobListingRepository(database),
		ApplicationRepository:       NewApplicationRepository(database),
	}
}
