package catalog

import (
	"sync"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/observability/metrics"
	"direct-admission/internal/repository"
)

// Store holds the current catalog for the lifetime of the process.
// Published slices are never modified in place: writers replace them
// with new slices, so a Snapshot stays valid after later writes.
type Store struct {
	mu   sync.RWMutex
	snap repository.Snapshot
}

// NewStore returns a store initialised with snap.
func NewStore(snap repository.Snapshot) *Store {
	s := &Store{}
	s.Replace(snap)
	return s
}

// Snapshot returns the current collections.
func (s *Store) Snapshot() repository.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Replace swaps every collection at once.
func (s *Store) Replace(snap repository.Snapshot) {
	snap = normalize(snap)
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	metrics.UpdateCatalogSize(len(snap.Colleges), len(snap.Courses), len(snap.Users))
}

// SetCourses publishes a new course collection.
func (s *Store) SetCourses(courses []entity.Course) {
	s.update(func(snap *repository.Snapshot) { snap.Courses = nonNil(courses) })
}

// SetColleges publishes a new college collection.
func (s *Store) SetColleges(colleges []entity.College) {
	s.update(func(snap *repository.Snapshot) { snap.Colleges = nonNil(colleges) })
}

// SetUsers publishes a new user collection.
func (s *Store) SetUsers(users []entity.User) {
	s.update(func(snap *repository.Snapshot) { snap.Users = nonNil(users) })
}

func (s *Store) update(fn func(*repository.Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	snap := s.snap
	s.mu.Unlock()
	metrics.UpdateCatalogSize(len(snap.Colleges), len(snap.Courses), len(snap.Users))
}

func normalize(snap repository.Snapshot) repository.Snapshot {
	return repository.Snapshot{
		Colleges: nonNil(snap.Colleges),
		Courses:  nonNil(snap.Courses),
		Users:    nonNil(snap.Users),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
