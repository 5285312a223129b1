package search

import (
	"strings"

	"direct-admission/internal/domain/entity"
)

// containsFold reports whether needle is a case-insensitive substring of
// haystack. An empty needle matches everything.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContains(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}
	return false
}

// CourseMatches reports whether an enriched course satisfies both the text
// and the location filter. The description is matched as stored, markup
// included.
func CourseMatches(c entity.EnrichedCourse, text, location string) bool {
	return anyContains(text, c.CourseName, c.CollegeName, c.Description) &&
		anyContains(location, c.Location, c.State)
}

// CollegeMatches reports whether a college satisfies both the text and the
// location filter.
func CollegeMatches(c entity.College, text, location string) bool {
	return anyContains(text, c.Name, c.Location, c.State, c.Description) &&
		anyContains(location, c.Location, c.State)
}
