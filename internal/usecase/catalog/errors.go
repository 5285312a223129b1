// Package catalog owns the in-memory entity store and the mutation rules
// of the admission catalog. Writes are validated, applied to the store and
// then handed to the durable repository.
package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog use case operations.
var (
	// ErrCourseNotFound indicates that no course has the requested ID.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCollegeNotFound indicates that no college has the requested ID.
	ErrCollegeNotFound = errors.New("college not found")

	// ErrUserNotFound indicates that no user has the requested email.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserNotAuthorized is returned by Authenticate for an email that is
	// not in the user collection.
	ErrUserNotAuthorized = errors.New("user not authorized")

	// ErrInvalidRole is returned by Authenticate when the stored role is not
	// one of Admin, Editor or Viewer.
	ErrInvalidRole = errors.New("invalid role")
)

// PersistenceError reports that a mutation was applied in memory but the
// write-back of Collection to the durable store failed. The in-memory
// change is kept.
type PersistenceError struct {
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceError reports whether err carries a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
