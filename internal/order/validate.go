package order

import "regexp"

var (
	lettersOnly = regexp.MustCompile(`^[A-Za-z]+$`)
	digitsOnly  = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateName returns a user-facing message, or "" when valid.
func ValidateName(name string) string {
	if name == "" {
		return "Name is required"
	}
	if !lettersOnly.MatchString(name) {
		return "Name must contain only letters"
	}
	return ""
}

// ValidatePhone returns a user-facing message, or "" when valid.
func ValidatePhone(phone string) string {
	if phone == "" {
		return "Phone number is required"
	}
	if !digitsOnly.MatchString(phone) {
		return "Phone must contain only numbers"
	}
	return ""
}
