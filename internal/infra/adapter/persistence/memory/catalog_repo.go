// Package memory provides a process-local catalog repository. It backs
// the service when no database is configured and can be seeded from a
// YAML document.
package memory

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/repository"
)

// Seed is the YAML layout accepted by LoadSeed.
//
//	colleges:
//	  - id: c1
//	    name: IIT
//	courses:
//	  - id: "1"
//	    collegeId: c1
//	users:
//	  - email: admin@example.com
//	    role: Admin
type Seed struct {
	Colleges []entity.College `yaml:"colleges"`
	Courses  []entity.Course  `yaml:"courses"`
	Users    []entity.User    `yaml:"users"`
}

// CatalogRepo keeps each collection as a private copy.
type CatalogRepo struct {
	mu   sync.RWMutex
	snap repository.Snapshot
}

// NewCatalogRepo returns a repository holding a copy of snap.
func NewCatalogRepo(snap repository.Snapshot) *CatalogRepo {
	return &CatalogRepo{snap: repository.Snapshot{
		Colleges: clone(snap.Colleges),
		Courses:  clone(snap.Courses),
		Users:    clone(snap.Users),
	}}
}

// LoadSeed decodes a YAML seed document.
func LoadSeed(r io.Reader) (repository.Snapshot, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return repository.Snapshot{}, fmt.Errorf("decode seed: %w", err)
	}
	for i := range seed.Users {
		seed.Users[i].Email = entity.NormalizeEmail(seed.Users[i].Email)
	}
	return repository.Snapshot{Colleges: seed.Colleges, Courses: seed.Courses, Users: seed.Users}, nil
}

// LoadSeedFile reads a YAML seed from path.
func LoadSeedFile(path string) (repository.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return repository.Snapshot{}, fmt.Errorf("open seed: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadSeed(f)
}

// DumpSeed writes snap as a YAML seed document.
func DumpSeed(w io.Writer, snap repository.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Seed{Colleges: snap.Colleges, Courses: snap.Courses, Users: snap.Users}); err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	return enc.Close()
}

func (r *CatalogRepo) ReadAll(ctx context.Context) (repository.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return repository.Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return repository.Snapshot{
		Colleges: clone(r.snap.Colleges),
		Courses:  clone(r.snap.Courses),
		Users:    clone(r.snap.Users),
	}, nil
}

func (r *CatalogRepo) WriteCourses(ctx context.Context, courses []entity.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.snap.Courses = clone(courses)
	r.mu.Unlock()
	return nil
}

func (r *CatalogRepo) WriteColleges(ctx context.Context, colleges []entity.College) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.snap.Colleges = clone(colleges)
	r.mu.Unlock()
	return nil
}

func (r *CatalogRepo) WriteUsers(ctx context.Context, users []entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.snap.Users = clone(users)
	r.mu.Unlock()
	return nil
}

func clone[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
