package models

import (
	"encoding/json"
	"time"
)

// PlacementApplication links one Student to one JobListing
type PlacementApplication struct {
	ID            int64             `json:"id" db:"id" example:"1"`
	StudentID     int64             `json:"studentId" db:"student_id" example:"3"`
	JobListingID  int64             `json:"jobListingId" db:"job_listing_id" example:"7"`
	CurrentStatus ApplicationStatus `json:"currentStatus" db:"current_status" example:"APPLIED"`
	RoundResults  json.RawMessage   `json:"roundResults,omitempty" db:"round_results" swaggertype:"object"`
	AppliedAt     time.Time         `json:"appliedAt" db:"applied_at"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student    *Student    `json:"student,omitempty"`
	JobListing *JobListing `json:"jobListing,omitempty"`
}
