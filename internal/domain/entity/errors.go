package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrValidationFailed).
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ReferentialIntegrityError is returned when a college cannot be removed
// because courses still reference it. BlockingCourses is always > 0.
type ReferentialIntegrityError struct {
	CollegeID       string
	BlockingCourses int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("college %q cannot be deleted: it has %d existing course(s)", e.CollegeID, e.BlockingCourses)
}

// DuplicateUserError is returned when a user with the same normalized email already exists.
type DuplicateUserError struct {
	Email string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("user %s already exists", e.Email)
}

// DuplicateIDError is returned when a course or college ID is already
// taken in its collection. Kind is "course" or "college".
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s id %q already exists", e.Kind, e.ID)
}

// SelfDeletionError is returned when the acting user targets their own account.
type SelfDeletionError struct {
	Email string
}

func (e *SelfDeletionError) Error() string {
	return fmt.Sprintf("cannot delete own account %s", e.Email)
}
