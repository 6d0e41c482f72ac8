package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is the system-wide signal to clear stored
	// credentials and force re-login.
	ErrUnauthorized = errors.New("upstream rejected credentials")
	// ErrNotFound marks a profile that has not been created yet. It is an
	// expected state, not a failure.
	ErrNotFound = errors.New("upstream resource not found")
)

// APIError carries the backend's own message for a non-2xx the user caused
// (validation, conflicts). The session stays intact.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

// TransportError covers network failures, 5xx and undecodable bodies.
// Callers must treat it as transient: keep the session, keep the last known
// state, let the user retry.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err should leave the session untouched and be
// surfaced as retryable.
func IsTransient(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
