// Package apperr defines the error kinds shared by services and handlers.
// Services return errors wrapping one of the sentinel kinds; the transport
// layer maps kinds to HTTP status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a referenced puzzle or user that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument marks a request the caller can fix, like an
	// unknown listing category.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized marks a missing, invalid or expired credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInconsistency marks a violated internal invariant, like a partial
	// write across the completion and puzzle stores.
	ErrInconsistency = errors.New("inconsistency")
	// ErrStorage marks a collaborator failure, not further classified.
	ErrStorage = errors.New("storage failure")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrNotFound, args)...)
}

// InvalidArgument wraps ErrInvalidArgument with a formatted message.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrInvalidArgument, args)...)
}

// Unauthorized wraps ErrUnauthorized with a formatted message.
func Unauthorized(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrUnauthorized, args)...)
}

// Inconsistency wraps ErrInconsistency with a formatted message.
func Inconsistency(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrInconsistency, args)...)
}

// Storage wraps a collaborator error so it carries the ErrStorage kind.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

func prepend(err error, args []interface{}) []interface{} {
	return append([]interface{}{err}, args...)
}

// IsNotFound reports whether err carries the not-found kind.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidArgument reports whether err carries the invalid-argument kind.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsUnauthorized reports whether err carries the unauthorized kind.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
