package dto

import (
	"mime/multipart"

	"github.com/yigit/placement-portal/internal/app/models"
)

// RegisterForm is the multipart form of POST /api/user/register.
// Every field arrives as text; the service parses and validates them.
type RegisterForm struct {
	Email      string `form:"email" example:"student@college.edu"`
	Password   string `form:"password" example:"secret123"`
	Role       string `form:"role" example:"student"`
	Name       string `form:"name" example:"Asha Rao"`
	Department string `form:"department" example:"CSE"`
	Year       string `form:"year" example:"3"`
	RollNumber string `form:"rollNumber" example:"CSE21-042"`
	CGPA       string `form:"cgpa" example:"8.4"`
	EmployeeID string `form:"employeeId" example:"EMP-1007"`
}

// RegisterInput is a registration request handed to the auth service
type RegisterInput struct {
	RegisterForm
	// Files holds every uploaded file part keyed by field name
	Files map[string][]*multipart.FileHeader
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" example:"student@college.edu"`
	Password string `json:"password" example:"secret123"`
}

// ResendVerificationRequest asks for a fresh verification e-mail
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required" example:"student@college.edu"`
}

// UserSummary is the sanitized projection returned after registration
type UserSummary struct {
	ID    int64       `json:"id" example:"1"`
	Email string      `json:"email" example:"student@college.edu"`
	Role  models.Role `json:"role" example:"student"`
	Name  string      `json:"name" example:"Asha Rao"`
}

// RegisterResponse is returned with 201 on successful registration
type RegisterResponse struct {
	Message string      `json:"message" example:"User registered successfully"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// StudentProfileView is the login profile of a student
type StudentProfileView struct {
	Department string  `json:"department" example:"CSE"`
	Year       int     `json:"year" example:"3"`
	RollNumber string  `json:"rollNumber" example:"CSE21-042"`
	CGPA       float64 `json:"cgpa" example:"8.4"`
	Image      *string `json:"image"`
}

// CoordinatorProfileView is the login profile of a coordinator
type CoordinatorProfileView struct {
	EmployeeID string `json:"employeeId" example:"EMP-1007"`
}

// LoginUser is the sanitized projection returned after login
type LoginUser struct {
	UserSummary
	// Profile is either StudentProfileView or CoordinatorProfileView
	Profile interface{} `json:"profile"`
}

// LoginResponse is returned with 200 on successful login
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// NewUserSummary projects a user for clients
func NewUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name(),
	}
}

// NewProfileView returns the role-shaped profile of user
func NewProfileView(user *models.User) interface{} {
	switch p := user.Profile.(type) {
	case *models.StudentProfile:
		return StudentProfileView{
			Department: p.Department,
			Year:       p.Year,
			RollNumber: p.RollNumber,
			CGPA:       p.CGPA,
			Image:      p.Image,
		}
	case *models.CoordinatorProfile:
		return CoordinatorProfileView{EmployeeID: p.EmployeeID}
	default:
		return nil
	}
}
