package models

import "time"

// PlacementRound is one stage of a company's selection process
type PlacementRound struct {
	RoundName   string `json:"roundName"`
	Description string `json:"description"`
}

// JobListing is a recruitment drive stored in the 'job_listings' table
type JobListing struct {
	ID                      int64            `json:"id" db:"id" example:"1"`
	CompanyName             string           `json:"companyName" db:"company_name" validate:"required" example:"Acme Corp"`
	CompanyWebsite          string           `json:"companyWebsite,omitempty" db:"company_website" validate:"omitempty,url"`
	CompanyLogo             *string          `json:"companyLogo,omitempty" db:"company_logo"`
	TypeOfDrive             DriveType        `json:"typeOfDrive" db:"type_of_drive" validate:"required,oneof=CAMPUS ONLINE HYBRID" example:"CAMPUS"`
	DateOfCampusDrive       time.Time        `json:"dateOfCampusDrive" db:"date_of_campus_drive" validate:"required"`
	StreamRequired          []string         `json:"streamRequired" db:"stream_required" validate:"dive,stream" example:"B.Tech,CSE"`
	EligibilityCriteria     []string         `json:"eligibilityCriteria" db:"eligibility_criteria"`
	BatchYear               string           `json:"batchYear" db:"batch_year" validate:"required,oneof=2024 2025 2026" example:"2025"`
	JobPosition             string           `json:"jobPosition" db:"job_position" validate:"required" example:"Software Engineer"`
	JobLocation             string           `json:"jobLocation" db:"job_location" validate:"required" example:"Bengaluru"`
	DateOfJoining           time.Time        `json:"dateOfJoining" db:"date_of_joining" validate:"required"`
	PayPackage              *float64         `json:"payPackage" db:"pay_package" validate:"required,gte=0" example:"1200000"`
	StipendDuringInternship *float64         `json:"stipendDuringInternship,omitempty" db:"stipend_during_internship" validate:"omitempty,gte=0"`
	SalaryAfterInternship   *float64         `json:"salaryAfterInternship" db:"salary_after_internship" validate:"required,gte=0"`
	AnyBond                 string           `json:"anyBond,omitempty" db:"any_bond"`
	PlacementProcess        []PlacementRound `json:"placementProcess" db:"placement_process"`
	ApplyLink               string           `json:"applyLink,omitempty" db:"apply_link" validate:"omitempty,url"`
	CreatedAt               time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt               time.Time        `json:"updatedAt" db:"updated_at"`
}

// AcceptsCourse reports whether a student of the given course may apply
func (j *JobListing) AcceptsCourse(course Course) bool {
	for _, s := range j.StreamRequired {
		if s == string(course) {
			return true
		}
	}
	return false
}

// DriveAfterJoining reports the date-ordering violation
func (j *JobListing) DriveAfterJoining() bool {
	return j.DateOfCampusDrive.After(j.DateOfJoining)
}
