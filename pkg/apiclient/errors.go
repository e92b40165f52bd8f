package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyBaseURL indicates the client was constructed without a base URL.
	ErrEmptyBaseURL = errors.New("apiclient: base URL cannot be empty")

	// ErrRequestFailed wraps transport-level failures (DNS, timeouts, closed
	// connections) as opposed to application-level HTTP errors.
	ErrRequestFailed = errors.New("apiclient: request failed")

	// ErrDecodeResponse indicates the response body could not be decoded.
	ErrDecodeResponse = errors.New("apiclient: failed to decode response")
)

// Error represents an application-level HTTP error (status >= 400).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("apiclient: unexpected status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("apiclient: unexpected status %d", e.Status)
}

// IsNotFound reports whether err is an HTTP 404 error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an HTTP 401 error.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// application-level HTTP error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
