package entities

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNotFound is returned when a requested document id does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrStoreUninitialized is returned when an operation is attempted
	// before the document store client was constructed. Unlike transport
	// failures this is fatal and never degraded to an empty result.
	ErrStoreUninitialized = errors.New("document store not initialized")

	// ErrOperationInFlight is returned when a mutating operation is retried
	// on the same target before the first call resolved.
	ErrOperationInFlight = errors.New("operation already in flight")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a missing or invalid form field. It is surfaced
// before any store call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreError wraps a transport or permission failure from the document
// store. Read-path aggregates degrade to empty results on StoreError;
// write paths propagate it to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a store failure for the named operation
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a StoreError
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
