package utils

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{9,12}$`)
)

// ValidEmail checks the address against the same pattern the registration
// form enforces. Empty strings are not valid.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone accepts 9 to 12 digits with an optional leading +.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
