// internal/common/errors/http.go
package errors

import "time"

// ErrorResponse is the JSON body returned to API clients on failure.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Normalize ensures we always have a StandardError to report.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ToResponse converts any error into an HTTP status and response body.
func ToResponse(err error) (int, ErrorResponse) {
	stdErr := Normalize(err)
	return HTTPStatus(stdErr.Code), ErrorResponse{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	}
}
