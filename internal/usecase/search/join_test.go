package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"direct-admission/internal/domain/entity"
)

/*──────────────────────── fixtures ────────────────────────*/

func fixtureColleges() []entity.College {
	return []entity.College{
		{ID: "c1", Name: "IIT", Location: "Kharagpur", State: "West Bengal", LogoURL: "https://img/iit.png", Phone: "9874530810"},
		{ID: "c2", Name: "Jadavpur University", Location: "Kolkata", State: "West Bengal", Description: "<p>Public <b>research</b> university</p>"},
		{ID: "c3", Name: "NIT Trichy", Location: "Tiruchirappalli", State: "Tamil Nadu"},
	}
}

func fixtureCourses() []entity.Course {
	return []entity.Course{
		{ID: "1", CollegeID: "c1", CourseName: "B.Tech CSE", Fees: 850000, Duration: "4 Years"},
		{ID: "2", CollegeID: "c2", CourseName: "B.Sc Physics", Fees: 12000, Duration: "3 Years"},
		{ID: "3", CollegeID: "c3", CourseName: "M.Tech VLSI", Fees: 500000, Duration: "2 Years", Description: "Chip design"},
		{ID: "4", CollegeID: "gone", CourseName: "MBA", Fees: 650000, Duration: "2 Years"},
	}
}

/*──────────────────────── Enrich ────────────────────────*/

func TestEnrich_Totality(t *testing.T) {
	courses := fixtureCourses()

	got := Enrich(courses, fixtureColleges())

	require.Len(t, got, len(courses))
	for i := range courses {
		assert.Equal(t, courses[i].CollegeID, got[i].CollegeID)
		assert.Equal(t, courses[i].ID, got[i].ID)
	}
}

func TestEnrich_ResolvedCollege(t *testing.T) {
	got := Enrich(fixtureCourses()[:1], fixtureColleges())

	want := entity.EnrichedCourse{
		Course:       fixtureCourses()[0],
		CollegeName:  "IIT",
		Location:     "Kharagpur",
		State:        "West Bengal",
		LogoURL:      "https://img/iit.png",
		CollegePhone: "9874530810",
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("Enrich() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnrich_DanglingReferenceFallsBack(t *testing.T) {
	got := Enrich(fixtureCourses()[3:], fixtureColleges())

	require.Len(t, got, 1)
	assert.Equal(t, entity.UnknownCollegeName, got[0].CollegeName)
	assert.Equal(t, entity.UnknownPlace, got[0].Location)
	assert.Equal(t, entity.UnknownPlace, got[0].State)
	assert.Empty(t, got[0].LogoURL)
	assert.Empty(t, got[0].CollegePhone)
}

func TestEnrich_EmptyCollegeFieldsFallBack(t *testing.T) {
	colleges := []entity.College{{ID: "c1", Name: "", Location: "Pune", State: "", Phone: "9876543210"}}

	got := Enrich([]entity.Course{{ID: "1", CollegeID: "c1"}}, colleges)

	assert.Equal(t, entity.UnknownCollegeName, got[0].CollegeName)
	assert.Equal(t, "Pune", got[0].Location)
	assert.Equal(t, entity.UnknownPlace, got[0].State)
	assert.Equal(t, "9876543210", got[0].CollegePhone)
}

func TestEnrich_FirstMatchingCollegeWins(t *testing.T) {
	colleges := []entity.College{
		{ID: "dup", Name: "First"},
		{ID: "dup", Name: "Second"},
	}

	got := Enrich([]entity.Course{{ID: "1", CollegeID: "dup"}}, colleges)

	assert.Equal(t, "First", got[0].CollegeName)
}

func TestEnrich_EmptyInputs(t *testing.T) {
	assert.Empty(t, Enrich(nil, fixtureColleges()))

	got := Enrich(fixtureCourses(), nil)
	for _, ec := range got {
		assert.Equal(t, entity.UnknownCollegeName, ec.CollegeName)
	}
}

func TestEnrich_IsIdempotentAndPure(t *testing.T) {
	courses := fixtureCourses()
	colleges := fixtureColleges()
	before := fixtureCourses()

	a := Enrich(courses, colleges)
	b := Enrich(courses, colleges)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated Enrich differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, courses); diff != "" {
		t.Errorf("Enrich mutated input (-before +after):\n%s", diff)
	}
}
