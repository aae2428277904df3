package types

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the storage layer and the inventory facade.
// Callers test for a class with errors.Is.
var (
	// ErrConnection means the database cannot be opened or used.
	ErrConnection = errors.New("database connection unavailable")
	// ErrConstraint is a unique or not-null violation rejected by the store.
	ErrConstraint = errors.New("constraint violation")
	// ErrNotFound is returned by store lookups that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrValidation is raised before any write is attempted.
	ErrValidation = errors.New("validation failed")
	// ErrProtected is returned when deleting or renaming a system category.
	ErrProtected = errors.New("protected entity")
)

// ValidationError describes a single rejected input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
