package models

import (
	"errors"
	"fmt"
)

// Sentinel errors, use with errors.Is().
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrExpired      = errors.New("validity window has passed")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError is a field-level constraint violation. Recoverable by the
// caller via corrected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidStateError is raised when a lifecycle action is attempted from a
// status that does not permit it. The entity is left unmodified.
type InvalidStateError struct {
	Entity  string
	Action  string
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s in status %q", e.Action, e.Entity, e.Current)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// NotFoundError is raised when a referenced entity id does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ExpiredError is raised when a time-window check fails. Distinct from
// InvalidStateError since the condition is time-dependent and may resolve
// or worsen without further mutation.
type ExpiredError struct {
	Entity  string
	ID      string
	ValidTo int64
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s %s is outside its validity window", e.Entity, e.ID)
}

func (e *ExpiredError) Unwrap() error { return ErrExpired }
