package appwrite

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx response from the remote service.
// Type carries the service's machine-readable error kind when present
// (e.g. "user_invalid_credentials", "document_not_found").
type HTTPError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsHTTP returns true if err (or any wrapped error) is an HTTPError,
// i.e. the request reached the service and got a non-2xx answer back.
// A false result for a failed call means a transport-level failure.
func IsHTTP(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError
// with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
