package transport

import (
	"errors"
	"fmt"
)

// Error taxonomy, one sentinel per API failure class. Match with errors.Is.
var (
	// ErrUnauthorized is returned when API authentication fails (401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned by valid endpoints not enabled for API use (403).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the requested resource does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrUnprocessableEntity is returned for invalid create/update payloads (422).
	ErrUnprocessableEntity = errors.New("unprocessable entity")
	// ErrServerError signals a server-side failure (405 or 500).
	ErrServerError = errors.New("server error")
)

// StatusError carries the HTTP status and response body alongside the
// sentinel it unwraps to.
type StatusError struct {
	StatusCode int
	Body       []byte
	kind       error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: %v (status %d)", e.kind, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return e.kind }

// classify maps an HTTP status to the error taxonomy. Anything outside the
// fixed failure set, including 200 and 201, is success.
func classify(status int, body []byte) error {
	var kind error
	switch status {
	case 401:
		kind = ErrUnauthorized
	case 403:
		kind = ErrForbidden
	case 404:
		kind = ErrNotFound
	case 422:
		kind = ErrUnprocessableEntity
	case 405, 500:
		kind = ErrServerError
	default:
		return nil
	}
	return &StatusError{StatusCode: status, Body: body, kind: kind}
}
