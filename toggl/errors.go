package toggl

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrRequiredField indicates a request was built without a mandatory field
	ErrRequiredField = errors.New("required field missing")
	// ErrNilArgument indicates a required object argument was nil
	ErrNilArgument = errors.New("required argument is nil")
	// ErrUnsupported indicates the operation does not exist on the selected API version
	ErrUnsupported = errors.New("operation not supported by this API version")
	// ErrUnexpectedResponse indicates the API answered with a status outside 200/201
	ErrUnexpectedResponse = errors.New("unexpected API response")
)

// ValidationError reports a missing or invalid request field.
type ValidationError struct {
	Op     string
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("toggl: %s: field %q %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("toggl: %s: required field %q is missing", e.Op, e.Field)
}

// Is makes errors.Is(err, ErrRequiredField) match every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrRequiredField
}

func missing(op, field string) error {
	return &ValidationError{Op: op, Field: field}
}

func invalid(op, field, reason string) error {
	return &ValidationError{Op: op, Field: field, Reason: reason}
}

// APIError represents a Toggl API response with a status outside the accepted set.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := http.StatusText(e.StatusCode)
	if len(e.Body) > 0 {
		body := e.Body
		if len(body) > 512 {
			body = body[:512]
		}
		msg = string(body)
	}
	if e.Path != "" {
		return fmt.Sprintf("toggl API error: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("toggl API error: status %d: %s", e.StatusCode, msg)
}

// Is makes errors.Is(err, ErrUnexpectedResponse) match every APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrUnexpectedResponse
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited reports a 429 response.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError reports a 5xx response.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// StatusCode extracts the HTTP status from an *APIError anywhere in err's chain.
// It returns 0 when err carries no API status.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
