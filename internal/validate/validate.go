// Package validate holds the synchronous form checks that gate the
// interactive flows. Everything here is a pure predicate; failures block
// the action instead of surfacing as errors.
package validate

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinPasswordLen matches the sign-up rule of the auth backend.
	MinPasswordLen = 8
	// MaxDescriptionLen caps the free-text transaction description.
	MaxDescriptionLen = 60
	// MinAgeYears is the minimum age accepted during onboarding.
	MinAgeYears = 13
)

// ValidEmail checks the rough shape local@domain.tld without attempting
// full RFC validation; the auth backend has the final say.
func ValidEmail(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// ValidPassword checks the minimum length rule.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLen
}

// ValidDescription checks the 1-60 character rule, counting runes so
// multibyte text is not penalized.
func ValidDescription(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= MaxDescriptionLen
}

// IsAtLeastAge reports whether someone born on birth has reached
// minYears as of ref. The birthday itself counts as having reached the
// age; a Feb 29 birthday is reached on Mar 1 in common years.
func IsAtLeastAge(birth time.Time, minYears int, ref time.Time) bool {
	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	return years >= minYears
}
