package dto

import (
	"github.com/yigit/placement-portal/internal/app/models"
)

// JobListingRequest is the body of POST /api/job-listings.
// Dates accept RFC 3339 or YYYY-MM-DD.
type JobListingRequest struct {
	CompanyName             string                  `json:"companyName" example:"Acme Corp"`
	CompanyWebsite          string                  `json:"companyWebsite" example:"https://acme.example"`
	CompanyLogo             *string                 `json:"companyLogo"`
	TypeOfDrive             string                  `json:"typeOfDrive" example:"CAMPUS"`
	DateOfCampusDrive       string                  `json:"dateOfCampusDrive" example:"2025-01-10"`
	StreamRequired          []string                `json:"streamRequired" example:"B.Tech,CSE"`
	EligibilityCriteria     []string                `json:"eligibilityCriteria"`
	BatchYear               string                  `json:"batchYear" example:"2025"`
	JobPosition             string                  `json:"jobPosition" example:"Software Engineer"`
	JobLocation             string                  `json:"jobLocation" example:"Bengaluru"`
	DateOfJoining           string                  `json:"dateOfJoining" example:"2025-07-01"`
	PayPackage              *float64                `json:"payPackage" example:"1200000"`
	StipendDuringInternship *float64                `json:"stipendDuringInternship"`
	SalaryAfterInternship   *float64                `json:"salaryAfterInternship" example:"1200000"`
	AnyBond                 string                  `json:"anyBond"`
	PlacementProcess        []models.PlacementRound `json:"placementProcess"`
	ApplyLink               string                  `json:"applyLink" example:"https://acme.example/apply"`
}

// UpdateJobListingRequest is the body of PATCH /api/job-listings/:id; absent fields are kept
type UpdateJobListingRequest struct {
	CompanyName             *string                 `json:"companyName"`
	CompanyWebsite          *string                 `json:"companyWebsite"`
	CompanyLogo             *string                 `json:"companyLogo"`
	TypeOfDrive             *string                 `json:"typeOfDrive"`
	DateOfCampusDrive       *string                 `json:"dateOfCampusDrive"`
	StreamRequired          []string                `json:"streamRequired"`
	EligibilityCriteria     []string                `json:"eligibilityCriteria"`
	BatchYear               *string                 `json:"batchYear"`
	JobPosition             *string                 `json:"jobPosition"`
	JobLocation             *string                 `json:"jobLocation"`
	DateOfJoining           *string                 `json:"dateOfJoining"`
	PayPackage              *float64                `json:"payPackage"`
	StipendDuringInternship *float64                `json:"stipendDuringInternship"`
	SalaryAfterInternship   *float64                `json:"salaryAfterInternship"`
	AnyBond                 *string                 `json:"anyBond"`
	PlacementProcess        []models.PlacementRound `json:"placementProcess"`
	ApplyLink               *string                 `json:"applyLink"`
}

// JobListingFilter narrows GET /api/job-listings
type JobListingFilter struct {
	Stream    string
	BatchYear string
	Page      int
	Size      int
}

// JobListingListResponse is one page of listings
type JobListingListResponse struct {
	JobListings []*models.JobListing `json:"jobListings"`
	Pagination  PaginationInfo       `json:"pagination"`
}
