package models

import "time"

// Project is a free-form entry on a student's placement profile
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// SocialLinks are optional profile links
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string `json:"github,omitempty" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
}

// Student is the placement-side profile stored in the 'students' table
type Student struct {
	ID              int64       `json:"id" db:"id" example:"1"`
	FullName        string      `json:"fullName" db:"full_name" validate:"required,max=255" example:"Asha Rao"`
	UniversityID    string      `json:"universityId" db:"university_id" validate:"required" example:"U2021CS042"`
	UniversityEmail string      `json:"universityEmail" db:"university_email" validate:"required,email" example:"asha@college.edu"`
	PersonalEmail   string      `json:"personalEmail,omitempty" db:"personal_email" validate:"omitempty,email"`
	PhoneNumber     string      `json:"phoneNumber,omitempty" db:"phone_number" validate:"omitempty,mobile" example:"+919876543210"`
	Course          Course      `json:"course" db:"course" validate:"required,course" example:"B.Tech"`
	Password        string      `json:"-" db:"password" validate:"required"`
	ProfileImage    *string     `json:"profileImage,omitempty" db:"profile_image"`
	Bio             string      `json:"bio,omitempty" db:"bio" validate:"max=500"`
	Resume          *string     `json:"resume,omitempty" db:"resume"`
	Skills          []string    `json:"skills" db:"skills"`
	Projects        []Project   `json:"projects" db:"projects" validate:"dive"`
	SocialLinks     SocialLinks `json:"socialLinks" db:"social_links"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}
