package dto

import (
	"encoding/json"

	"github.com/yigit/placement-portal/internal/app/models"
)

// ApplyRequest is the body of POST /api/applications
type ApplyRequest struct {
	StudentID    int64 `json:"studentId" binding:"required,min=1" example:"3"`
	JobListingID int64 `json:"jobListingId" binding:"required,min=1" example:"7"`
}

// UpdateApplicationStatusRequest is the body of PATCH /api/applications/:id/status
type UpdateApplicationStatusRequest struct {
	Status       models.ApplicationStatus `json:"status" binding:"required" example:"ROUND1"`
	RoundResults json.RawMessage          `json:"roundResults" swaggertype:"object"`
}

// ApplicationFilter narrows GET /api/applications
type ApplicationFilter struct {
	StudentID    int64
	JobListingID int64
	Status       models.ApplicationStatus
	Page         int
	Size         int
}

// ApplicationListResponse is one page of applications
type ApplicationListResponse struct {
	Applications []*models.PlacementApplication `json:"applications"`
	Pagination   PaginationInfo                 `json:"pagination"`
}
