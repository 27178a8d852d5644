// Package validate normalizes and checks the fields of a client submission.
//
// Every function here is pure and total: invalid input yields false or is
// passed through unchanged, never an error.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinFullNameLength is the minimum number of characters in a trimmed name.
const MinFullNameLength = 2

var (
	// The email pattern is deliberately loose. It accepts some addresses a
	// stricter validator would reject (e.g. "a..b@x.com"), and callers rely on
	// exactly this accepted set.
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+1-[0-9]{3}-[0-9]{3}-[0-9]{4}$`)
)

// NormalizePhone reformats raw into the canonical +1-AAA-BBB-CCCC form.
//
// Non-digits are stripped first. Eleven digits with a leading 1 lose the
// country code, ten digits are used as-is. Anything else returns raw
// unchanged, which IsValidPhone will then reject.
func NormalizePhone(raw string) string {
	digits := make([]byte, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
		}
	}

	switch {
	case len(digits) == 11 && digits[0] == '1':
		digits = digits[1:]
	case len(digits) == 10:
	default:
		return raw
	}

	return "+1-" + string(digits[:3]) + "-" + string(digits[3:6]) + "-" + string(digits[6:])
}

// IsValidPhone reports whether s is exactly in canonical phone form.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidFullName reports whether s has at least MinFullNameLength
// characters once surrounding whitespace is removed.
func IsValidFullName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinFullNameLength
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeName trims surrounding whitespace from a name.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}
