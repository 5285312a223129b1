package repository

import (
	"context"

	"direct-admission/internal/domain/entity"
)

// Snapshot is the full content of the catalog store at one point in time.
// Readers never receive nil slices.
type Snapshot struct {
	Colleges []entity.College
	Courses  []entity.Course
	Users    []entity.User
}

// CatalogReader loads every collection of the durable store.
type CatalogReader interface {
	ReadAll(ctx context.Context) (Snapshot, error)
}

// CatalogWriter replaces a whole collection in the durable store.
// Each call is a full replacement, never a partial update.
type CatalogWriter interface {
	WriteCourses(ctx context.Context, courses []entity.Course) error
	WriteColleges(ctx context.Context, colleges []entity.College) error
	WriteUsers(ctx context.Context, users []entity.User) error
}

// CatalogRepository is the durable store backing the catalog.
type CatalogRepository interface {
	CatalogReader
	CatalogWriter
}
