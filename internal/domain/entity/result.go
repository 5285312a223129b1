package entity

// ResultType tags the variant held by a ResultItem.
type ResultType string

const (
	ResultCourse  ResultType = "course"
	ResultCollege ResultType = "college"
)

// ResultItem is one row of a search result: exactly one of Course or
// College is set, matching Type.
type ResultItem struct {
	Type    ResultType      `json:"type"`
	Course  *EnrichedCourse `json:"course,omitempty"`
	College *College        `json:"college,omitempty"`
}

// CourseItem wraps an enriched course as a result item.
func CourseItem(c EnrichedCourse) ResultItem {
	return ResultItem{Type: ResultCourse, Course: &c}
}

// CollegeItem wraps a college as a result item.
func CollegeItem(c College) ResultItem {
	return ResultItem{Type: ResultCollege, College: &c}
}

// IsCourse reports whether the item holds a course.
func (r ResultItem) IsCourse() bool {
	return r.Type == ResultCourse && r.Course != nil
}

// Name returns the display name used for alphabetical ordering:
// the course name for courses, the college name for colleges.
func (r ResultItem) Name() string {
	if r.IsCourse() {
		return r.Course.CourseName
	}
	if r.College != nil {
		return r.College.Name
	}
	return ""
}
