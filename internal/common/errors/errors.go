// Package errors provides the standardized error type shared by the dashboard client.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Remote call failures. Every call site collapses into one of these.
const (
	ErrCodeTransportFailure  ErrorCode = "TRANSPORT_FAILURE"
	ErrCodeUnexpectedStatus  ErrorCode = "UNEXPECTED_STATUS"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// Client-side failures.
const (
	ErrCodeNotAuthenticated ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Operation  string                 `json:"operation,omitempty"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Retryable  bool                   `json:"retryable"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("StandardError[%s] %s: %s", e.Code, e.Operation, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause (transport error, decode error, ...).
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewTransportError wraps a network-level failure (connection refused, DNS, timeout).
func NewTransportError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailure,
		Operation: operation,
		Message:   "Request could not be delivered",
		Details:   errorText(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUnexpectedStatusError reports a non-2xx response.
func NewUnexpectedStatusError(operation string, status int, body string) *StandardError {
	return &StandardError{
		Code:       ErrCodeUnexpectedStatus,
		Operation:  operation,
		Message:    fmt.Sprintf("Server responded with %d.", status),
		Details:    strings.TrimSpace(body),
		StatusCode: status,
		Retryable:  false,
		Timestamp:  time.Now().UTC(),
	}
}

// NewMalformedResponseError reports a body that could not be validated or decoded.
func NewMalformedResponseError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Operation: operation,
		Message:   "Server returned a malformed response",
		Details:   errorText(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewNotAuthenticatedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotAuthenticated,
		Message:   "Not authenticated",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   fmt.Sprintf("Invalid %s", field),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

func NewGenerationFailedError(kind string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Operation: kind,
		Message:   "Text generation failed",
		Details:   errorText(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandard extracts a *StandardError from anywhere in err's chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}

// StatusCodeOf returns the HTTP status attached to err, or 0.
func StatusCodeOf(err error) int {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.StatusCode
	}
	return 0
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	if stdErr, ok := AsStandard(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeTransportFailure:
		return "TRANSPORT"
	case ErrCodeUnexpectedStatus:
		return "SERVER"
	case ErrCodeMalformedResponse:
		return "PAYLOAD"
	case ErrCodeNotAuthenticated:
		return "AUTH"
	case ErrCodeInvalidInput:
		return "VALIDATION"
	case ErrCodeGenerationFailed:
		return "AI"
	default:
		return "OTHER"
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
