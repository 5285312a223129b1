package search

import "direct-admission/internal/domain/entity"

// Assemble filters the enriched courses and the colleges with the given
// text and location and concatenates the survivors, courses first.
// A collection excluded by resultType is not iterated at all.
func Assemble(
	enriched []entity.EnrichedCourse,
	colleges []entity.College,
	text, location string,
	resultType ResultType,
) []entity.ResultItem {
	out := make([]entity.ResultItem, 0)
	if resultType.includesCourses() {
		for _, c := range enriched {
			if CourseMatches(c, text, location) {
				out = append(out, entity.CourseItem(c))
			}
		}
	}
	if resultType.includesColleges() {
		for _, c := range colleges {
			if CollegeMatches(c, text, location) {
				out = append(out, entity.CollegeItem(c))
			}
		}
	}
	return out
}

// AssembleResults resolves the effective text and location of q and
// delegates to Assemble.
func AssembleResults(enriched []entity.EnrichedCourse, colleges []entity.College, q SearchQuery) []entity.ResultItem {
	return Assemble(enriched, colleges, q.EffectiveText(), q.EffectiveLocation(), q.ResultType)
}
