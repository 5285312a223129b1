package entity

import (
	"fmt"
	"net/mail"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// MaxDescriptionLength bounds rich-text descriptions, counted in characters.
	MaxDescriptionLength = 50000

	// MaxFees is the largest fee accepted (7 digits).
	MaxFees = 9_999_999

	phoneDigits = 10
)

// ValidatePhone accepts an empty string or exactly 10 digits without a leading zero.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) != phoneDigits {
		return &ValidationError{Field: "phone", Message: "must be empty or exactly 10 digits"}
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return &ValidationError{Field: "phone", Message: "must be digits only"}
		}
	}
	if phone[0] == '0' {
		return &ValidationError{Field: "phone", Message: "must be 10 digits not starting with 0"}
	}
	return nil
}

// ValidateFees accepts 0..MaxFees.
func ValidateFees(fees int64) error {
	if fees < 0 {
		return &ValidationError{Field: "fees", Message: "must be non-negative"}
	}
	if fees > MaxFees {
		return &ValidationError{Field: "fees", Message: fmt.Sprintf("must be at most %d", MaxFees)}
	}
	return nil
}

// ValidateDescription enforces MaxDescriptionLength.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("too long: exceeds the %d character limit", MaxDescriptionLength),
		}
	}
	return nil
}

// ValidateEmail checks that email is a bare address (no display name).
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	return nil
}

var (
	descriptionPolicy     *bluemonday.Policy
	descriptionPolicyOnce sync.Once
)

// SanitizeDescription strips scripts, event handlers and other unsafe markup
// from editor HTML while keeping formatting tags.
func SanitizeDescription(html string) string {
	if html == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.UGCPolicy()
	})
	return descriptionPolicy.Sanitize(html)
}
