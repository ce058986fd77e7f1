package models

import (
	"time"
)

// User defines the portal account stored in the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                            // Unique identifier for the user
	Email      string    `json:"email" db:"email" example:"student@college.edu"`    // Login e-mail, globally unique
	Password   string    `json:"-" db:"password"`                                   // bcrypt hash, never serialized
	Role       Role      `json:"role" db:"role" example:"student"`                  // student or coordinator
	IsVerified bool      `json:"isVerified" db:"is_verified" example:"false"`       // Only meaningful for students
	Profile    Profile   `json:"profile"`                                           // Role specific profile, loaded from its own table
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// Name returns the display name from the profile
func (u *User) Name() string {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Base().Name
}

// RequiresVerification reports whether login must be refused until the e-mail is confirmed
func (u *User) RequiresVerification() bool {
	return u.Role == RoleStudent && !u.IsVerified
}

// StudentProfile returns the student variant of the profile
func (u *User) StudentProfile() (*StudentProfile, bool) {
	p, ok := u.Profile.(*StudentProfile)
	return p, ok
}

// CoordinatorProfile returns the coordinator variant of the profile
func (u *User) CoordinatorProfile() (*CoordinatorProfile, bool) {
	p, ok := u.Profile.(*CoordinatorProfile)
	return p, ok
}

// Profile is the role specific part of a user. It is implemented only by
// StudentProfile and CoordinatorProfile.
type Profile interface {
	Base() BaseProfile
	Role() Role
	isProfile()
}

// BaseProfile holds the fields shared by every role
type BaseProfile struct {
	Name  string  `json:"name" db:"name"`
	Image *string `json:"image,omitempty" db:"image"`
}

// StudentProfile is stored in 'student_profiles'
type StudentProfile struct {
	BaseProfile
	Department string  `json:"department" db:"department" example:"CSE"`
	Year       int     `json:"year" db:"year" example:"3"`
	RollNumber string  `json:"rollNumber" db:"roll_number" example:"CSE21-042"`
	CGPA       float64 `json:"cgpa" db:"cgpa" example:"8.4"`
	Resume     *string `json:"resume,omitempty" db:"resume" example:"uploads/resumes/1714000000000-cv.pdf"`
}

func (p *StudentProfile) Base() BaseProfile { return p.BaseProfile }
func (p *StudentProfile) Role() Role        { return RoleStudent }
func (p *StudentProfile) isProfile()        {}

// CoordinatorProfile is stored in 'coordinator_profiles'
type CoordinatorProfile struct {
	BaseProfile
	EmployeeID string `json:"employeeId" db:"employee_id" example:"EMP-1007"`
}

func (p *CoordinatorProfile) Base() BaseProfile { return p.BaseProfile }
func (p *CoordinatorProfile) Role() Role        { return RoleCoordinator }
func (p *CoordinatorProfile) isProfile()        {}

// EmailVerificationToken is a single-use token mailed to new students
type EmailVerificationToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Expired reports whether the token can no longer be used at now
func (t *EmailVerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
