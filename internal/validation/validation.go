// Package validation holds the format rules shared by the registration
// and password-reset flows. All functions are pure.
package validation

import (
	"regexp"
	"strings"
)

var (
	// RFC-approximate; good enough to reject obvious garbage, the
	// confirmation mail is the real proof of ownership.
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	passwordPattern = regexp.MustCompile("^[0-9a-zA-Z!\"#$%&'()*+,\\-./:;<=>?@\\[\\\\\\]^_`{|}~]{8,48}$")
)

// IsEmailSafe rejects addresses containing characters with meaning in
// the store's query syntax, before they get anywhere near a filter.
func IsEmailSafe(email string) bool {
	return !strings.ContainsAny(email, "${}")
}

func IsEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

// IsUsernameValid: 3 to 20 characters, letters/digits/underscore/hyphen.
func IsUsernameValid(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsPasswordValid: 8 to 48 characters from the printable ASCII set,
// no spaces.
func IsPasswordValid(password string) bool {
	return passwordPattern.MatchString(password)
}
