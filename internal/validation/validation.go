// Package validation holds the field-level checks every mutating operation runs
// before it is allowed anywhere near the network. Nothing here performs I/O.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const MinPasswordLength = 8

// local@domain.tld, no whitespace, exactly one "@"
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmptyString reports whether s is empty after trimming whitespace.
func IsEmptyString(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsValidEmail checks the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// PasswordResult lists every violated password rule, in rule order.
type PasswordResult struct {
	Valid  bool
	Errors []string
}

type passwordCheck struct {
	ok  func(string) bool
	msg string
}

var passwordChecks = []passwordCheck{
	{
		ok:  func(s string) bool { return utf8.RuneCountInString(s) >= MinPasswordLength },
		msg: "Password must be at least 8 characters",
	},
	{
		ok:  func(s string) bool { return strings.IndexFunc(s, unicode.IsUpper) >= 0 },
		msg: "Password must contain at least one uppercase letter",
	},
	{
		ok:  func(s string) bool { return strings.IndexFunc(s, unicode.IsLower) >= 0 },
		msg: "Password must contain at least one lowercase letter",
	},
	{
		ok:  func(s string) bool { return strings.IndexFunc(s, unicode.IsDigit) >= 0 },
		msg: "Password must contain at least one number",
	},
}

// ValidatePassword checks every rule independently; it does not stop at the first failure.
func ValidatePassword(s string) PasswordResult {
	res := PasswordResult{Errors: []string{}}
	for _, c := range passwordChecks {
		if !c.ok(s) {
			res.Errors = append(res.Errors, c.msg)
		}
	}
	res.Valid = len(res.Errors) == 0
	return res
}
