package entity

// DefaultDuration is used when a course is added without a duration.
const DefaultDuration = "4 Years"

// UnknownCollegeName and UnknownPlace are the display values of an
// EnrichedCourse whose CollegeID does not resolve to a college.
const (
	UnknownCollegeName = "Unknown College"
	UnknownPlace       = "Unknown"
)

// Course represents a programme offered by a college.
// CollegeID is a foreign key into College.ID; a dangling reference is
// tolerated and rendered with the Unknown* display values.
type Course struct {
	ID          string  `json:"id" yaml:"id"`
	CollegeID   string  `json:"collegeId" yaml:"collegeId"`
	CourseName  string  `json:"courseName" yaml:"courseName"`
	Fees        int64   `json:"fees" yaml:"fees"`
	Duration    string  `json:"duration" yaml:"duration"`
	Description string  `json:"description" yaml:"description"`
	Rating      float64 `json:"rating" yaml:"rating"`
	RatingCount int     `json:"ratingCount" yaml:"ratingCount"`
}

// Validate checks the fields an admin must provide for a course.
// A CollegeID that matches no college is accepted.
func (c *Course) Validate() error {
	if c.CollegeID == "" {
		return &ValidationError{Field: "collegeId", Message: "is required"}
	}
	if c.CourseName == "" {
		return &ValidationError{Field: "courseName", Message: "is required"}
	}
	if err := ValidateFees(c.Fees); err != nil {
		return err
	}
	return ValidateDescription(c.Description)
}

// EnrichedCourse is a Course joined with the display attributes of its college.
// It is derived on every read and never persisted.
type EnrichedCourse struct {
	Course
	CollegeName  string `json:"collegeName"`
	Location     string `json:"location"`
	State        string `json:"state"`
	LogoURL      string `json:"logoUrl,omitempty"`
	CollegePhone string `json:"collegePhone,omitempty"`
}
