package entity

import "strings"

// Role is the access level of a catalog user.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// IsValid reports whether r is one of the enumerated roles.
// The comparison is exact: "admin" is not a valid role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanManage reports whether the role may open the management dashboard.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User is an account allowed to sign in. Email is the identity and is
// stored normalized (see NormalizeEmail).
type User struct {
	Email  string `json:"email" yaml:"email"`
	Name   string `json:"name" yaml:"name"`
	Role   Role   `json:"role" yaml:"role"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the email shape and the role.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if !u.Role.IsValid() {
		return &ValidationError{Field: "role", Message: "must be one of Admin, Editor, Viewer"}
	}
	return nil
}
