package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message" example:"Missing required field: email"`
	Error   string `json:"error,omitempty" example:"Invalid file type. Only PDF and Word documents are allowed."`
}

// NewErrorResponse creates an error body; detail may be empty
func NewErrorResponse(message, detail string) ErrorResponse {
	return ErrorResponse{Message: message, Error: detail}
}
