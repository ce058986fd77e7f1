package dto

import "github.com/yigit/placement-portal/internal/app/models"

// CreateStudentRequest is the body of POST /api/students
type CreateStudentRequest struct {
	FullName        string             `json:"fullName" example:"Asha Rao"`
	UniversityID    string             `json:"universityId" example:"U2021CS042"`
	UniversityEmail string             `json:"universityEmail" example:"asha@college.edu"`
	PersonalEmail   string             `json:"personalEmail" example:"asha@mail.example"`
	PhoneNumber     string             `json:"phoneNumber" example:"+919876543210"`
	Course          string             `json:"course" example:"B.Tech"`
	Password        string             `json:"password" example:"secret123"`
	ProfileImage    *string            `json:"profileImage"`
	Bio             string             `json:"bio"`
	Resume          *string            `json:"resume"`
	Skills          []string           `json:"skills"`
	Projects        []models.Project   `json:"projects"`
	SocialLinks     models.SocialLinks `json:"socialLinks"`
}

// StudentFilter narrows GET /api/students
type StudentFilter struct {
	Course string
	Page   int
	Size   int
}

// StudentListResponse is one page of students
type StudentListResponse struct {
	Students   []*models.Student `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}
