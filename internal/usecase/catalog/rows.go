package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"direct-admission/internal/domain/entity"
)

// Sheet names of the bulk import/export workbook.
const (
	SheetColleges = "Colleges"
	SheetCourses  = "Courses"
	SheetUsers    = "Users"
)

// Row is one untyped record of an imported sheet, keyed by column header.
// Keys are matched case-insensitively.
type Row map[string]string

// NewRow builds a Row from a header line and the matching cells. Cells
// beyond the header are ignored and missing cells read as empty.
func NewRow(header, cells []string) Row {
	r := make(Row, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if i < len(cells) {
			r[key] = strings.TrimSpace(cells[i])
		} else {
			r[key] = ""
		}
	}
	return r
}

func (r Row) get(key string) string {
	return r[strings.ToLower(key)]
}

// number reads a numeric cell. Blank or unparsable cells read as 0;
// digit group separators are ignored.
func (r Row) number(key string) float64 {
	v := strings.NewReplacer(",", "", " ", "").Replace(r.get(key))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Sheets holds the rows of every sheet found in a workbook. A sheet that
// is absent from the map leaves its collection untouched on import.
type Sheets map[string][]Row

// CollegeFromRow coerces an imported row into a College.
func CollegeFromRow(r Row) entity.College {
	return entity.College{
		ID:          r.get("id"),
		Name:        r.get("name"),
		Location:    r.get("location"),
		State:       r.get("state"),
		LogoURL:     r.get("logoUrl"),
		Description: r.get("description"),
		Phone:       r.get("phone"),
		Rating:      r.number("rating"),
		RatingCount: int(r.number("ratingCount")),
	}
}

// CourseFromRow coerces an imported row into a Course. The
// college_name_reference helper column written by export is ignored.
func CourseFromRow(r Row) entity.Course {
	c := entity.Course{
		ID:          r.get("id"),
		CollegeID:   r.get("collegeId"),
		CourseName:  r.get("courseName"),
		Fees:        int64(math.Round(r.number("fees"))),
		Duration:    r.get("duration"),
		Description: r.get("description"),
		Rating:      r.number("rating"),
		RatingCount: int(r.number("ratingCount")),
	}
	if c.Duration == "" {
		c.Duration = entity.DefaultDuration
	}
	return c
}

// UserFromRow coerces an imported row into a User.
func UserFromRow(r Row) entity.User {
	return entity.User{
		Email:  entity.NormalizeEmail(r.get("email")),
		Name:   r.get("name"),
		Role:   entity.Role(r.get("role")),
		Avatar: r.get("avatar"),
	}
}

// ImportSummary counts the entities loaded per sheet. A nil count means
// the sheet was absent.
type ImportSummary struct {
	Colleges *int `json:"colleges,omitempty"`
	Courses  *int `json:"courses,omitempty"`
	Users    *int `json:"users,omitempty"`
}

// Import fully replaces each collection whose sheet is present. Every row
// is coerced and validated, and every sheet checked for repeated IDs or
// emails, before any collection is replaced. Rows without an ID receive a
// generated one.
//
// Write-back failures do not stop the remaining sheets; they are returned
// joined once all present sheets have been applied.
func (s *Service) Import(ctx context.Context, sheets Sheets) (ImportSummary, error) {
	var summary ImportSummary

	colleges, hasColleges, err := coerce(sheets, SheetColleges, func(r Row) (entity.College, error) {
		c := CollegeFromRow(r)
		if c.ID == "" {
			c.ID = collegeIDPrefix + newID()
		}
		c.Description = entity.SanitizeDescription(c.Description)
		return c, c.Validate()
	})
	if err == nil {
		err = uniqueRows(SheetColleges, colleges, collegeID, func(c entity.College) error {
			return &entity.DuplicateIDError{Kind: "college", ID: c.ID}
		})
	}
	if err != nil {
		return summary, err
	}
	courses, hasCourses, err := coerce(sheets, SheetCourses, func(r Row) (entity.Course, error) {
		c := CourseFromRow(r)
		if c.ID == "" {
			c.ID = newID()
		}
		c.Description = entity.SanitizeDescription(c.Description)
		return c, c.Validate()
	})
	if err == nil {
		err = uniqueRows(SheetCourses, courses, courseID, func(c entity.Course) error {
			return &entity.DuplicateIDError{Kind: "course", ID: c.ID}
		})
	}
	if err != nil {
		return summary, err
	}
	users, hasUsers, err := coerce(sheets, SheetUsers, func(r Row) (entity.User, error) {
		u := UserFromRow(r)
		return u, u.Validate()
	})
	if err == nil {
		err = uniqueRows(SheetUsers, users, userEmail, func(u entity.User) error {
			return &entity.DuplicateUserError{Email: userEmail(u)}
		})
	}
	if err != nil {
		return summary, err
	}

	var persistErrs []error
	apply := func(present bool, n int, count **int, replace func() error) error {
		if !present {
			return nil
		}
		err := replace()
		if err != nil && !IsPersistenceError(err) {
			return err
		}
		if err != nil {
			persistErrs = append(persistErrs, err)
		}
		*count = &n
		return nil
	}

	if err := apply(hasColleges, len(colleges), &summary.Colleges, func() error { return s.ReplaceColleges(ctx, colleges) }); err != nil {
		return summary, err
	}
	if err := apply(hasCourses, len(courses), &summary.Courses, func() error { return s.ReplaceCourses(ctx, courses) }); err != nil {
		return summary, err
	}
	if err := apply(hasUsers, len(users), &summary.Users, func() error { return s.ReplaceUsers(ctx, users) }); err != nil {
		return summary, err
	}

	slog.InfoContext(ctx, "catalog import applied",
		slog.Bool("colleges", hasColleges),
		slog.Bool("courses", hasCourses),
		slog.Bool("users", hasUsers),
		slog.Int("persist_failures", len(persistErrs)))
	return summary, errors.Join(persistErrs...)
}

func coerce[T any](sheets Sheets, name string, fn func(Row) (T, error)) ([]T, bool, error) {
	rows, ok := sheets[name]
	if !ok {
		return nil, false, nil
	}
	out := make([]T, 0, len(rows))
	for i, r := range rows {
		v, err := fn(r)
		if err != nil {
			// 1行目はヘッダー
			return nil, true, fmt.Errorf("import %s row %d: %w", name, i+2, err)
		}
		out = append(out, v)
	}
	return out, true, nil
}

// uniqueRows rejects a sheet in which two rows share a key.
func uniqueRows[T any](name string, items []T, key func(T) string, dup func(T) error) error {
	if i := firstDuplicate(items, key); i >= 0 {
		return fmt.Errorf("import %s row %d: %w", name, i+2, dup(items[i]))
	}
	return nil
}
