// Package search implements the read side of the catalog: the join of
// courses to their colleges, the text and location predicates, result
// assembly and ranking. Every function here is pure and safe for
// concurrent use.
package search

import "direct-admission/internal/domain/entity"

// Enrich joins each course to the first college whose ID equals the
// course's CollegeID. Courses with a dangling reference, and empty name or
// place fields of a resolved college, get the Unknown display values. Output order and length match the input.
func Enrich(courses []entity.Course, colleges []entity.College) []entity.EnrichedCourse {
	index := make(map[string]int, len(colleges))
	for i := len(colleges) - 1; i >= 0; i-- {
		// 先頭の一致を優先するため逆順で上書き
		index[colleges[i].ID] = i
	}

	out := make([]entity.EnrichedCourse, 0, len(courses))
	for _, c := range courses {
		ec := entity.EnrichedCourse{
			Course:      c,
			CollegeName: entity.UnknownCollegeName,
			Location:    entity.UnknownPlace,
			State:       entity.UnknownPlace,
		}
		if i, ok := index[c.CollegeID]; ok {
			col := colleges[i]
			ec.CollegeName = orDefault(col.Name, entity.UnknownCollegeName)
			ec.Location = orDefault(col.Location, entity.UnknownPlace)
			ec.State = orDefault(col.State, entity.UnknownPlace)
			ec.LogoURL = col.LogoURL
			ec.CollegePhone = col.Phone
		}
		out = append(out, ec)
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
