package domain

import (
	"regexp"
	"strings"
)

// emailPattern mirrors the format the mobile clients validate against:
// one run without whitespace/@ before the @, one after, then a dot and a
// final run.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordCharset restricts passwords to letters, digits and the allowed
// symbol set.
var passwordCharset = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]+$`)

const passwordSymbols = "!@#$%^&*"

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePassword enforces the account password policy: at least 8
// characters, at least one digit, at least one symbol from !@#$%^&*, and
// nothing outside letters/digits/those symbols.
func ValidatePassword(s string) error {
	if len(s) < 8 {
		return ErrPasswordTooShort
	}
	if !passwordCharset.MatchString(s) ||
		!strings.ContainsAny(s, "0123456789") ||
		!strings.ContainsAny(s, passwordSymbols) {
		return ErrPasswordComplexity
	}
	return nil
}
