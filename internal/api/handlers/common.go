package handlers

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Camera not found"`
}

// SuccessResponse is the JSON body for requests with no payload
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Camera removed"`
}
