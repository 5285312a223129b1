package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/observability/metrics"
	"direct-admission/internal/repository"
	"direct-admission/internal/resilience/circuitbreaker"
)

// insertBatchSize bounds the rows per INSERT statement, well below the
// 65535 bind parameter limit of PostgreSQL.
const insertBatchSize = 500

// CatalogRepo stores the catalog collections in three tables. Writes replace
// a whole table inside one transaction.
type CatalogRepo struct {
	db    *sql.DB
	reads *circuitbreaker.StoreReader
}

func NewCatalogRepo(db *sql.DB) repository.CatalogRepository {
	return &CatalogRepo{db: db, reads: circuitbreaker.NewStoreReader(db)}
}

// ReadAll loads the three collections concurrently.
func (repo *CatalogRepo) ReadAll(ctx context.Context) (repository.Snapshot, error) {
	snap := repository.Snapshot{
		Colleges: []entity.College{},
		Courses:  []entity.Course{},
		Users:    []entity.User{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Colleges, err = repo.readColleges(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Courses, err = repo.readCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Users, err = repo.readUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return repository.Snapshot{}, fmt.Errorf("ReadAll: %w", err)
	}
	return snap, nil
}

func (repo *CatalogRepo) readColleges(ctx context.Context) ([]entity.College, error) {
	const query = `
SELECT id, name, location, state, logo_url, description, phone, rating, rating_count
FROM colleges
ORDER BY position ASC`
	defer observe("read_colleges", time.Now())

	rows, err := repo.reads.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read colleges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	colleges := make([]entity.College, 0, 64)
	for rows.Next() {
		var c entity.College
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Location, &c.State, &c.LogoURL,
			&c.Description, &c.Phone, &c.Rating, &c.RatingCount,
		); err != nil {
			return nil, fmt.Errorf("read colleges: %w", err)
		}
		colleges = append(colleges, c)
	}
	return colleges, rows.Err()
}

func (repo *CatalogRepo) readCourses(ctx context.Context) ([]entity.Course, error) {
	const query = `
SELECT id, college_id, course_name, fees, duration, description, rating, rating_count
FROM courses
ORDER BY position ASC`
	defer observe("read_courses", time.Now())

	rows, err := repo.reads.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	courses := make([]entity.Course, 0, 256)
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(
			&c.ID, &c.CollegeID, &c.CourseName, &c.Fees, &c.Duration,
			&c.Description, &c.Rating, &c.RatingCount,
		); err != nil {
			return nil, fmt.Errorf("read courses: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (repo *CatalogRepo) readUsers(ctx context.Context) ([]entity.User, error) {
	const query = `
SELECT email, name, role, avatar
FROM users
ORDER BY position ASC`
	defer observe("read_users", time.Now())

	rows, err := repo.reads.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]entity.User, 0, 16)
	for rows.Next() {
		var u entity.User
		var role string
		if err := rows.Scan(&u.Email, &u.Name, &role, &u.Avatar); err != nil {
			return nil, fmt.Errorf("read users: %w", err)
		}
		u.Role = entity.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (repo *CatalogRepo) WriteColleges(ctx context.Context, colleges []entity.College) error {
	defer observe("write_colleges", time.Now())
	cols := []string{"position", "id", "name", "location", "state", "logo_url", "description", "phone", "rating", "rating_count"}
	err := repo.replace(ctx, "colleges", cols, len(colleges), func(i int) []any {
		c := colleges[i]
		return []any{i, c.ID, c.Name, c.Location, c.State, c.LogoURL, c.Description, c.Phone, c.Rating, c.RatingCount}
	})
	if err != nil {
		return fmt.Errorf("WriteColleges: %w", err)
	}
	return nil
}

func (repo *CatalogRepo) WriteCourses(ctx context.Context, courses []entity.Course) error {
	defer observe("write_courses", time.Now())
	cols := []string{"position", "id", "college_id", "course_name", "fees", "duration", "description", "rating", "rating_count"}
	err := repo.replace(ctx, "courses", cols, len(courses), func(i int) []any {
		c := courses[i]
		return []any{i, c.ID, c.CollegeID, c.CourseName, c.Fees, c.Duration, c.Description, c.Rating, c.RatingCount}
	})
	if err != nil {
		return fmt.Errorf("WriteCourses: %w", err)
	}
	return nil
}

func (repo *CatalogRepo) WriteUsers(ctx context.Context, users []entity.User) error {
	defer observe("write_users", time.Now())
	cols := []string{"position", "email", "name", "role", "avatar"}
	err := repo.replace(ctx, "users", cols, len(users), func(i int) []any {
		u := users[i]
		return []any{i, u.Email, u.Name, string(u.Role), u.Avatar}
	})
	if err != nil {
		return fmt.Errorf("WriteUsers: %w", err)
	}
	return nil
}

// replace deletes every row of table and inserts n rows built by row,
// all in one transaction.
func (repo *CatalogRepo) replace(ctx context.Context, table string, cols []string, n int, row func(int) []any) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}
	for start := 0; start < n; start += insertBatchSize {
		end := min(start+insertBatchSize, n)
		query, args := insertStatement(table, cols, start, end, row)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// insertStatement builds one multi-row INSERT for rows [start, end).
func insertStatement(table string, cols []string, start, end int, row func(int) []any) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, (end-start)*len(cols))

	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES ")
	for i := start; i < end; i++ {
		if i > start {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range cols {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, nil)
			fmt.Fprintf(&sb, "$%d", len(args))
		}
		sb.WriteByte(')')
		copy(args[len(args)-len(cols):], row(i))
	}
	return sb.String(), args
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
