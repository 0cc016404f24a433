package api

import (
	"errors"
	"fmt"
)

// APIError represents an error returned by one of the backend services.
// StatusCode 0 means the failure happened before a valid response was
// obtained (unreachable server, non-JSON body).
type APIError struct {
	StatusCode int
	Message    string

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap exposes the underlying transport error to errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// networkError translates a transport failure into the taxonomy so the
// raw dial/timeout error never reaches a caller undressed.
func networkError(err error) *APIError {
	return &APIError{
		StatusCode: 0,
		Message:    "could not reach the server",
		Err:        err,
	}
}

// IsAuthError returns true for 401/403 responses.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsNotFound returns true if the error is a 404 Not Found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsServerError returns true if the error is a 5xx server error.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsNetworkError returns true if no usable response was obtained.
func (e *APIError) IsNetworkError() bool {
	return e.StatusCode == 0
}

// AsAPIError checks if an error wraps an APIError and returns it.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// UserMessage maps an error to the message shown to the user, bucketed
// by status class. Validation errors and other non-API errors come
// through unchanged.
func UserMessage(err error) string {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return err.Error()
	}
	switch {
	case apiErr.IsAuthError():
		return "invalid credentials or session expired"
	case apiErr.IsNotFound():
		return "not found"
	case apiErr.IsServerError():
		return "the server encountered an error, please try again"
	case apiErr.IsNetworkError():
		return "could not reach the server, check your connection"
	default:
		return apiErr.Message
	}
}
