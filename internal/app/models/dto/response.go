package dto

// MessageResponse represents a standard message-only response
type MessageResponse struct {
	Message string `json:"message" example:"Email verified successfully"`
}

// HealthResponse is returned by the liveness probe
type HealthResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Server is testing"`
}

// PaginationInfo describes one page of a list
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"25"`
}
