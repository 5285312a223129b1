// Package entity defines the core domain entities of the admission catalog.
// It contains Colleges, Courses and Users, the derived EnrichedCourse view,
// their validation rules and the domain-specific error types.
package entity

// College represents an institution listed in the catalog.
// ID is unique within the catalog and is either supplied by the caller
// or generated when the college is added.
type College struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Location    string  `json:"location" yaml:"location"`
	State       string  `json:"state" yaml:"state"`
	LogoURL     string  `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Phone       string  `json:"phone,omitempty" yaml:"phone,omitempty"`
	Rating      float64 `json:"rating" yaml:"rating"`
	RatingCount int     `json:"ratingCount" yaml:"ratingCount"`
}

// Validate checks the fields an admin must provide for a college.
// Referential concerns (courses pointing at this college) are not checked here.
func (c *College) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if c.Location == "" {
		return &ValidationError{Field: "location", Message: "is required"}
	}
	if c.State == "" {
		return &ValidationError{Field: "state", Message: "is required"}
	}
	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}
	return ValidateDescription(c.Description)
}
