package web

import (
	"regexp"
	"unicode"
)

var passwordCharset = regexp.MustCompile(`^[A-Za-z0-9@_]+$`)

// ValidUsername: usernames only need length; any characters are accepted.
func ValidUsername(username string) bool {
	return len(username) >= 8
}

// ValidPassword: at least 8 chars from [A-Za-z0-9@_], with at least one
// uppercase letter and one digit.
func ValidPassword(password string) bool {
	if len(password) < 8 || !passwordCharset.MatchString(password) {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}
