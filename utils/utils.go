// Package utils provides input helpers for the link shortener service.
package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// DefaultExpiryMinutes is applied when no usable expiry is submitted.
const DefaultExpiryMinutes = 30

// ErrInvalidURL is returned for a missing URL or one without an http(s) scheme.
// Its text is shown to the user verbatim.
var ErrInvalidURL = errors.New("Please enter a valid URL starting with http:// or https://")

var httpURLPattern = regexp.MustCompile(`^https?://.+`)

// IsHTTPURL reports whether s starts with http:// or https:// followed by at least one character.
func IsHTTPURL(s string) bool {
	return httpURLPattern.MatchString(s)
}

// ValidateURL returns ErrInvalidURL unless s is a non-empty http(s) URL.
// No canonicalization is performed.
func ValidateURL(s string) error {
	if s == "" || !IsHTTPURL(s) {
		return ErrInvalidURL
	}
	return nil
}

// ExpiryOrDefault converts a submitted expiry to minutes.
// Blank or non-numeric input falls back to DefaultExpiryMinutes; any integer,
// zero and negatives included, is kept.
func ExpiryOrDefault(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultExpiryMinutes
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultExpiryMinutes
	}
	return n
}
