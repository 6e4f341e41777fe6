package dto

import errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse builds an error response with the code of err
func NewErrorResponse(err error, message string) ErrorResponse {
	return ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	}
}
