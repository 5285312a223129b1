package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"direct-admission/internal/domain/entity"
)

// collegeIDPrefix marks generated college identifiers.
const collegeIDPrefix = "col_"

func newID() string { return uuid.NewString() }

// The functions below are the pure mutation rules of the catalog. Each
// returns a new slice and leaves its input untouched.

// AddCourse prepends c, filling an empty ID and the optional defaults.
func AddCourse(courses []entity.Course, c entity.Course) []entity.Course {
	if c.ID == "" {
		c.ID = newID()
	}
	if strings.TrimSpace(c.Duration) == "" {
		c.Duration = entity.DefaultDuration
	}
	out := make([]entity.Course, 0, len(courses)+1)
	out = append(out, c)
	return append(out, courses...)
}

// AddCollege prepends c, filling an empty ID.
func AddCollege(colleges []entity.College, c entity.College) []entity.College {
	if c.ID == "" {
		c.ID = collegeIDPrefix + newID()
	}
	out := make([]entity.College, 0, len(colleges)+1)
	out = append(out, c)
	return append(out, colleges...)
}

// UpdateCourse replaces the course with c.ID in place. An unknown ID
// leaves the collection unchanged.
func UpdateCourse(courses []entity.Course, c entity.Course) []entity.Course {
	out := make([]entity.Course, len(courses))
	for i, existing := range courses {
		if existing.ID == c.ID {
			out[i] = c
		} else {
			out[i] = existing
		}
	}
	return out
}

// UpdateCollege replaces the college with c.ID in place. An unknown ID
// leaves the collection unchanged.
func UpdateCollege(colleges []entity.College, c entity.College) []entity.College {
	out := make([]entity.College, len(colleges))
	for i, existing := range colleges {
		if existing.ID == c.ID {
			out[i] = c
		} else {
			out[i] = existing
		}
	}
	return out
}

// RemoveCourse drops every course with the given ID.
func RemoveCourse(courses []entity.Course, id string) []entity.Course {
	out := make([]entity.Course, 0, len(courses))
	for _, c := range courses {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// RemoveCollege drops the college with the given ID unless a course still
// references it, in which case a *entity.ReferentialIntegrityError is
// returned together with the unchanged collection.
func RemoveCollege(colleges []entity.College, courses []entity.Course, id string) ([]entity.College, error) {
	if n := CountCourses(courses, id); n > 0 {
		return colleges, &entity.ReferentialIntegrityError{CollegeID: id, BlockingCourses: n}
	}
	out := make([]entity.College, 0, len(colleges))
	for _, c := range colleges {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out, nil
}

// CountCourses returns how many courses reference collegeID.
func CountCourses(courses []entity.Course, collegeID string) int {
	n := 0
	for _, c := range courses {
		if c.CollegeID == collegeID {
			n++
		}
	}
	return n
}

// AddUser appends u with a normalized email. A case-insensitive email
// clash returns *entity.DuplicateUserError and the unchanged collection.
func AddUser(users []entity.User, u entity.User) ([]entity.User, error) {
	u.Email = entity.NormalizeEmail(u.Email)
	if _, ok := FindUser(users, u.Email); ok {
		return users, &entity.DuplicateUserError{Email: u.Email}
	}
	out := make([]entity.User, 0, len(users)+1)
	out = append(out, users...)
	return append(out, u), nil
}

// RemoveUser drops the user with email. An actor removing their own
// account gets *entity.SelfDeletionError and the unchanged collection.
func RemoveUser(users []entity.User, actorEmail, email string) ([]entity.User, error) {
	target := entity.NormalizeEmail(email)
	if target == entity.NormalizeEmail(actorEmail) {
		return users, &entity.SelfDeletionError{Email: target}
	}
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		if entity.NormalizeEmail(u.Email) != target {
			out = append(out, u)
		}
	}
	return out, nil
}

// SetUserAvatar returns users with the avatar of email replaced.
func SetUserAvatar(users []entity.User, email, avatar string) []entity.User {
	target := entity.NormalizeEmail(email)
	out := make([]entity.User, len(users))
	for i, u := range users {
		if entity.NormalizeEmail(u.Email) == target {
			u.Avatar = avatar
		}
		out[i] = u
	}
	return out
}

// FindUser looks a user up by case-insensitive email.
func FindUser(users []entity.User, email string) (entity.User, bool) {
	target := entity.NormalizeEmail(email)
	for _, u := range users {
		if entity.NormalizeEmail(u.Email) == target {
			return u, true
		}
	}
	return entity.User{}, false
}

// firstDuplicate returns the index of the first item whose key repeats an
// earlier one, or -1.
func firstDuplicate[T any](items []T, key func(T) string) int {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			return i
		}
		seen[k] = struct{}{}
	}
	return -1
}

func courseID(c entity.Course) string { return c.ID }
func collegeID(c entity.College) string { return c.ID }
func userEmail(u entity.User) string { return entity.NormalizeEmail(u.Email) }

// checkCourseIDs rejects a batch that repeats a course ID.
func checkCourseIDs(courses []entity.Course) error {
	if i := firstDuplicate(courses, courseID); i >= 0 {
		return fmt.Errorf("item %d: %w", i, &entity.DuplicateIDError{Kind: "course", ID: courses[i].ID})
	}
	return nil
}

// checkCollegeIDs rejects a batch that repeats a college ID.
func checkCollegeIDs(colleges []entity.College) error {
	if i := firstDuplicate(colleges, collegeID); i >= 0 {
		return fmt.Errorf("item %d: %w", i, &entity.DuplicateIDError{Kind: "college", ID: colleges[i].ID})
	}
	return nil
}

func findCourse(courses []entity.Course, id string) (entity.Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Course{}, false
}

func findCollege(colleges []entity.College, id string) (entity.College, bool) {
	for _, c := range colleges {
		if c.ID == id {
			return c, true
		}
	}
	return entity.College{}, false
}
