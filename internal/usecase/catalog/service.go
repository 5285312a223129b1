package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/observability/metrics"
	"direct-admission/internal/observability/tracing"
	"direct-admission/internal/repository"
	"direct-admission/internal/resilience/circuitbreaker"
	"direct-admission/internal/resilience/retry"
)

// Config holds optional catalog behaviour.
type Config struct {
	// BootstrapAdminEmail is added as an Admin when a load finds no users.
	BootstrapAdminEmail string
}

// Service applies validated mutations to the Store and writes each changed
// collection back to the repository.
//
// Mutations are serialised: each one reads the current collection, computes
// the new one, publishes it and then persists it while holding mu. Reload
// does not take mu, so a reload that reads the repository before a
// concurrent write-back lands overwrites that change in memory (last writer
// wins).
type Service struct {
	store   *Store
	repo    repository.CatalogRepository
	breaker *circuitbreaker.CircuitBreaker
	cfg     Config

	mu         sync.Mutex
	lastReload atomic.Int64 // unix nanoseconds
}

// NewService creates a catalog Service over store and repo.
func NewService(store *Store, repo repository.CatalogRepository, cfg Config) *Service {
	return &Service{
		store:   store,
		repo:    repo,
		breaker: circuitbreaker.New(circuitbreaker.StoreWriteConfig()),
		cfg:     cfg,
	}
}

// Snapshot returns the current catalog contents.
func (s *Service) Snapshot() repository.Snapshot {
	return s.store.Snapshot()
}

/* ───────── loading ───────── */

// LastReload returns when the store was last loaded from the repository,
// or the zero time before the first successful Reload.
func (s *Service) LastReload() time.Time {
	ns := s.lastReload.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}

// Reload replaces the store with the repository contents, retrying
// transient store errors. On failure the store keeps its previous contents.
func (s *Service) Reload(ctx context.Context) error {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "catalog.reload")
	defer span.End()

	var snap repository.Snapshot
	err := retry.WithBackoff(ctx, retry.StoreReadConfig(), func() error {
		var err error
		snap, err = s.repo.ReadAll(ctx)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordReload(false, time.Since(start))
		return fmt.Errorf("reload catalog: %w", err)
	}
	if len(snap.Users) == 0 && s.cfg.BootstrapAdminEmail != "" {
		snap.Users = []entity.User{{
			Email: entity.NormalizeEmail(s.cfg.BootstrapAdminEmail),
			Name:  "Admin",
			Role:  entity.RoleAdmin,
		}}
		slog.InfoContext(ctx, "no users found, bootstrap admin added",
			slog.String("email", snap.Users[0].Email))
	}
	s.store.Replace(snap)
	s.lastReload.Store(time.Now().UnixNano())

	span.SetAttributes(
		attribute.Int("catalog.colleges", len(snap.Colleges)),
		attribute.Int("catalog.courses", len(snap.Courses)),
		attribute.Int("catalog.users", len(snap.Users)),
	)
	metrics.RecordReload(true, time.Since(start))
	slog.InfoContext(ctx, "catalog reloaded",
		slog.Int("colleges", len(snap.Colleges)),
		slog.Int("courses", len(snap.Courses)),
		slog.Int("users", len(snap.Users)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

/* ───────── courses ───────── */

// AddCourse validates c, prepends it and persists the course collection.
// A supplied ID that is already taken fails with *entity.DuplicateIDError.
// The stored course is returned even when a *PersistenceError is.
func (s *Service) AddCourse(ctx context.Context, c entity.Course) (entity.Course, error) {
	c.Description = entity.SanitizeDescription(c.Description)
	if err := c.Validate(); err != nil {
		metrics.RecordMutation(metrics.CollectionCourses, "add", metrics.OutcomeRejected)
		return entity.Course{}, fmt.Errorf("add course: %w", err)
	}

	var added entity.Course
	err := s.mutateCourses(ctx, "add", func(courses []entity.Course) ([]entity.Course, error) {
		if _, ok := findCourse(courses, c.ID); c.ID != "" && ok {
			return nil, &entity.DuplicateIDError{Kind: "course", ID: c.ID}
		}
		next := AddCourse(courses, c)
		added = next[0]
		return next, nil
	})
	return added, err
}

// UpdateCourse replaces the course with c.ID.
func (s *Service) UpdateCourse(ctx context.Context, c entity.Course) error {
	c.Description = entity.SanitizeDescription(c.Description)
	if err := c.Validate(); err != nil {
		metrics.RecordMutation(metrics.CollectionCourses, "update", metrics.OutcomeRejected)
		return fmt.Errorf("update course: %w", err)
	}
	return s.mutateCourses(ctx, "update", func(courses []entity.Course) ([]entity.Course, error) {
		if _, ok := findCourse(courses, c.ID); !ok {
			return nil, ErrCourseNotFound
		}
		return UpdateCourse(courses, c), nil
	})
}

// RemoveCourse deletes the course with id.
func (s *Service) RemoveCourse(ctx context.Context, id string) error {
	return s.mutateCourses(ctx, "remove", func(courses []entity.Course) ([]entity.Course, error) {
		if _, ok := findCourse(courses, id); !ok {
			return nil, ErrCourseNotFound
		}
		return RemoveCourse(courses, id), nil
	})
}

// ReplaceCourses validates every course and replaces the whole collection.
// A batch that repeats an ID is rejected.
func (s *Service) ReplaceCourses(ctx context.Context, in []entity.Course) error {
	courses := make([]entity.Course, len(in))
	copy(courses, in)
	for i := range courses {
		courses[i].Description = entity.SanitizeDescription(courses[i].Description)
		if err := courses[i].Validate(); err != nil {
			metrics.RecordMutation(metrics.CollectionCourses, "replace", metrics.OutcomeRejected)
			return fmt.Errorf("replace courses: item %d: %w", i, err)
		}
	}
	if err := checkCourseIDs(courses); err != nil {
		metrics.RecordMutation(metrics.CollectionCourses, "replace", metrics.OutcomeRejected)
		return fmt.Errorf("replace courses: %w", err)
	}
	return s.mutateCourses(ctx, "replace", func([]entity.Course) ([]entity.Course, error) {
		return courses, nil
	})
}

func (s *Service) mutateCourses(ctx context.Context, op string, fn func([]entity.Course) ([]entity.Course, error)) error {
	return s.mutate(ctx, metrics.CollectionCourses, op, func(snap repository.Snapshot) (func(context.Context) error, error) {
		next, err := fn(snap.Courses)
		if err != nil {
			return nil, err
		}
		s.store.SetCourses(next)
		return func(ctx context.Context) error { return s.repo.WriteCourses(ctx, next) }, nil
	})
}

/* ───────── colleges ───────── */

// AddCollege validates c, prepends it and persists the college collection.
// A supplied ID that is already taken fails with *entity.DuplicateIDError.
func (s *Service) AddCollege(ctx context.Context, c entity.College) (entity.College, error) {
	c.Description = entity.SanitizeDescription(c.Description)
	if err := c.Validate(); err != nil {
		metrics.RecordMutation(metrics.CollectionColleges, "add", metrics.OutcomeRejected)
		return entity.College{}, fmt.Errorf("add college: %w", err)
	}

	var added entity.College
	err := s.mutateColleges(ctx, "add", func(snap repository.Snapshot) ([]entity.College, error) {
		if _, ok := findCollege(snap.Colleges, c.ID); c.ID != "" && ok {
			return nil, &entity.DuplicateIDError{Kind: "college", ID: c.ID}
		}
		next := AddCollege(snap.Colleges, c)
		added = next[0]
		return next, nil
	})
	return added, err
}

// UpdateCollege replaces the college with c.ID.
func (s *Service) UpdateCollege(ctx context.Context, c entity.College) error {
	c.Description = entity.SanitizeDescription(c.Description)
	if err := c.Validate(); err != nil {
		metrics.RecordMutation(metrics.CollectionColleges, "update", metrics.OutcomeRejected)
		return fmt.Errorf("update college: %w", err)
	}
	return s.mutateColleges(ctx, "update", func(snap repository.Snapshot) ([]entity.College, error) {
		if _, ok := findCollege(snap.Colleges, c.ID); !ok {
			return nil, ErrCollegeNotFound
		}
		return UpdateCollege(snap.Colleges, c), nil
	})
}

// RemoveCollege deletes the college with id. It fails with
// *entity.ReferentialIntegrityError while any course references the college.
func (s *Service) RemoveCollege(ctx context.Context, id string) error {
	return s.mutateColleges(ctx, "remove", func(snap repository.Snapshot) ([]entity.College, error) {
		if _, ok := findCollege(snap.Colleges, id); !ok {
			return nil, ErrCollegeNotFound
		}
		return RemoveCollege(snap.Colleges, snap.Courses, id)
	})
}

// ReplaceColleges validates every college and replaces the whole collection.
// A batch that repeats an ID is rejected.
// Courses that reference a dropped college are kept as dangling references.
func (s *Service) ReplaceColleges(ctx context.Context, in []entity.College) error {
	colleges := make([]entity.College, len(in))
	copy(colleges, in)
	for i := range colleges {
		colleges[i].Description = entity.SanitizeDescription(colleges[i].Description)
		if err := colleges[i].Validate(); err != nil {
			metrics.RecordMutation(metrics.CollectionColleges, "replace", metrics.OutcomeRejected)
			return fmt.Errorf("replace colleges: item %d: %w", i, err)
		}
	}
	if err := checkCollegeIDs(colleges); err != nil {
		metrics.RecordMutation(metrics.CollectionColleges, "replace", metrics.OutcomeRejected)
		return fmt.Errorf("replace colleges: %w", err)
	}
	return s.mutateColleges(ctx, "replace", func(repository.Snapshot) ([]entity.College, error) {
		return colleges, nil
	})
}

func (s *Service) mutateColleges(ctx context.Context, op string, fn func(repository.Snapshot) ([]entity.College, error)) error {
	return s.mutate(ctx, metrics.CollectionColleges, op, func(snap repository.Snapshot) (func(context.Context) error, error) {
		next, err := fn(snap)
		if err != nil {
			return nil, err
		}
		s.store.SetColleges(next)
		return func(ctx context.Context) error { return s.repo.WriteColleges(ctx, next) }, nil
	})
}

/* ───────── users ───────── */

// AddUser validates u and appends it with a normalized email.
func (s *Service) AddUser(ctx context.Context, u entity.User) (entity.User, error) {
	u.Email = entity.NormalizeEmail(u.Email)
	if err := u.Validate(); err != nil {
		metrics.RecordMutation(metrics.CollectionUsers, "add", metrics.OutcomeRejected)
		return entity.User{}, fmt.Errorf("add user: %w", err)
	}
	err := s.mutateUsers(ctx, "add", func(users []entity.User) ([]entity.User, error) {
		return AddUser(users, u)
	})
	return u, err
}

// RemoveUser deletes the user with email on behalf of actorEmail.
// Removing one's own account fails with *entity.SelfDeletionError.
func (s *Service) RemoveUser(ctx context.Context, actorEmail, email string) error {
	return s.mutateUsers(ctx, "remove", func(users []entity.User) ([]entity.User, error) {
		next, err := RemoveUser(users, actorEmail, email)
		if err != nil {
			return nil, err
		}
		if len(next) == len(users) {
			return nil, ErrUserNotFound
		}
		return next, nil
	})
}

// ReplaceUsers validates every user and replaces the whole collection.
// Emails are normalized; duplicates within the batch are rejected.
func (s *Service) ReplaceUsers(ctx context.Context, users []entity.User) error {
	next := make([]entity.User, 0, len(users))
	for i, u := range users {
		var err error
		u.Email = entity.NormalizeEmail(u.Email)
		if err = u.Validate(); err == nil {
			next, err = AddUser(next, u)
		}
		if err != nil {
			metrics.RecordMutation(metrics.CollectionUsers, "replace", metrics.OutcomeRejected)
			return fmt.Errorf("replace users: item %d: %w", i, err)
		}
	}
	return s.mutateUsers(ctx, "replace", func([]entity.User) ([]entity.User, error) {
		return next, nil
	})
}

// User returns the current account for email.
func (s *Service) User(email string) (entity.User, bool) {
	return FindUser(s.store.Snapshot().Users, email)
}

// Authenticate admits a user by email. An unknown email yields
// ErrUserNotAuthorized and an unrecognised stored role ErrInvalidRole.
// A non-empty avatarURL that differs from the stored one is saved; a
// failure to persist it is logged and does not block sign-in.
func (s *Service) Authenticate(ctx context.Context, email, avatarURL string) (entity.User, error) {
	u, ok := FindUser(s.store.Snapshot().Users, email)
	if !ok {
		return entity.User{}, ErrUserNotAuthorized
	}
	if !u.Role.IsValid() {
		return entity.User{}, fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" || avatarURL == u.Avatar {
		return u, nil
	}

	u.Avatar = avatarURL
	err := s.mutateUsers(ctx, "avatar", func(users []entity.User) ([]entity.User, error) {
		return SetUserAvatar(users, u.Email, avatarURL), nil
	})
	if err != nil && !IsPersistenceError(err) {
		return entity.User{}, err
	}
	return u, nil
}

func (s *Service) mutateUsers(ctx context.Context, op string, fn func([]entity.User) ([]entity.User, error)) error {
	return s.mutate(ctx, metrics.CollectionUsers, op, func(snap repository.Snapshot) (func(context.Context) error, error) {
		next, err := fn(snap.Users)
		if err != nil {
			return nil, err
		}
		s.store.SetUsers(next)
		return func(ctx context.Context) error { return s.repo.WriteUsers(ctx, next) }, nil
	})
}

/* ───────── core ───────── */

// mutate runs apply under the mutation lock. apply publishes the new
// collection to the store and returns the write-back to run afterwards.
func (s *Service) mutate(
	ctx context.Context,
	collection, op string,
	apply func(repository.Snapshot) (func(context.Context) error, error),
) error {
	ctx, span := tracing.StartSpan(ctx, "catalog.mutate",
		attribute.String("catalog.collection", collection),
		attribute.String("catalog.op", op),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	persist, err := apply(s.store.Snapshot())
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordMutation(collection, op, metrics.OutcomeRejected)
		return fmt.Errorf("%s %s: %w", op, collection, err)
	}

	err = s.breaker.Do(func() error { return persist(ctx) })
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordMutation(collection, op, metrics.OutcomePersistFailed)
		metrics.RecordPersistenceFailure(collection)
		slog.WarnContext(ctx, "catalog change kept in memory but not persisted",
			slog.String("collection", collection),
			slog.String("op", op),
			slog.Any("error", err))
		return &PersistenceError{Collection: collection, Err: err}
	}

	metrics.RecordMutation(collection, op, metrics.OutcomeSuccess)
	return nil
}
