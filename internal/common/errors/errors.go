// Package errors provides standardized error handling for the template
// generation service.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Model completion errors. The analysis engine treats every one of these
	// identically (degrade to the task fallback), but they are distinguished
	// here for logs and metrics.
	ErrCodeModelCallFailed   ErrorCode = "MODEL_CALL_FAILED"
	ErrCodeModelTimeout      ErrorCode = "MODEL_TIMEOUT"
	ErrCodeResponseMalformed ErrorCode = "RESPONSE_MALFORMED"

	// Notion / template generation errors.
	ErrCodeNotionAPIFailed          ErrorCode = "NOTION_API_FAILED"
	ErrCodeNotionUnauthorized       ErrorCode = "NOTION_UNAUTHORIZED"
	ErrCodeWorkspaceEmpty           ErrorCode = "WORKSPACE_EMPTY"
	ErrCodeTemplateCreationFailed   ErrorCode = "TEMPLATE_CREATION_FAILED"
	ErrCodeRequestValidationFailed  ErrorCode = "REQUEST_VALIDATION_FAILED"
	ErrCodeRateLimited              ErrorCode = "RATE_LIMITED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewModelCallFailedError creates a retryable model completion error.
func NewModelCallFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelCallFailed,
		Message:   "Model completion API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelTimeoutError creates a retryable model timeout error.
func NewModelTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeModelTimeout,
		Message:   "Model completion timeout",
		Details:   "completion call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseMalformedError creates a non-retryable parse error for a model
// reply that was not the expected JSON shape.
func NewResponseMalformedError(task, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseMalformed,
		Message:   "Model reply was not the expected JSON shape",
		Details:   fmt.Sprintf("task: %s, %s", task, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotionAPIFailedError creates a retryable Notion API error.
func NewNotionAPIFailedError(status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotionAPIFailed,
		Message:   "Notion API error",
		Details:   fmt.Sprintf("status %d: %s", status, body),
		Retryable: status >= 500,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotionUnauthorizedError creates a non-retryable auth error.
func NewNotionUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotionUnauthorized,
		Message:   "Notion rejected the integration token",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkspaceEmptyError is returned when no parent page exists to build
// the template under.
func NewWorkspaceEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkspaceEmpty,
		Message:   "No pages found in workspace",
		Details:   "create at least one page shared with the integration first",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateCreationFailedError wraps a failure partway through template
// assembly.
func NewTemplateCreationFailedError(step string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateCreationFailed,
		Message:   "Template creation failed",
		Details:   fmt.Sprintf("step: %s, error: %s", step, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestValidationFailedError creates a non-retryable request error.
func NewRequestValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError is returned when a client exceeds the request budget.
func NewRateLimitedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps an error code to the status the API layer should return.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeRequestValidationFailed:
		return http.StatusBadRequest
	case ErrCodeNotionUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeWorkspaceEmpty:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeNotionAPIFailed, ErrCodeTemplateCreationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable checks whether an error carries a retryable code.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}
