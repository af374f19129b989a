// Package apperr defines the error kinds the services return so the HTTP
// layer can pick a status code without string matching.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by explicit lookups of ids that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write collides with existing data,
	// e.g. a duplicate e-mail address.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition is returned when a state machine is asked to
	// leave a terminal state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrUnauthenticated is returned for bad credentials and for sessions
	// that no longer exist.
	ErrUnauthenticated = errors.New("invalid email or password")

	// ErrCascadeIncomplete is returned when a status change was persisted
	// but the follow-up reward cascade failed. Re-running the operation is
	// safe.
	ErrCascadeIncomplete = errors.New("status saved but rewards were not fully applied")
)

// ValidationError reports a missing or malformed input. Nothing has been
// written when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// PolicyError reports an operation the acting user is not allowed to do,
// with a reason that is safe to show to that user.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// Denied builds a PolicyError.
func Denied(format string, args ...any) error {
	return &PolicyError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsPolicy reports whether err is (or wraps) a PolicyError.
func IsPolicy(err error) bool {
	var p *PolicyError
	return errors.As(err, &p)
}
