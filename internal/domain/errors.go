package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both nonexistent targets and targets outside the
	// actor's visibility scope; callers must not be able to tell them apart.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the actor lacks authority for the action.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError is malformed or rule-violating input, recoverable by
// resubmission. Field may be empty for request-level problems.
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

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError is a state-transition precondition violation; the caller
// should re-fetch current state before retrying.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}
