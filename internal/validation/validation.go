// Package validation holds the request validation helpers shared by the
// handlers. Failures are collected per field so the caller gets every
// problem at once.
package validation

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// DateFormat is the wire format for period_start / period_end.
const DateFormat = "2006-01-02"

// Errors maps a field name to its validation messages.
type Errors map[string][]string

// Add appends a message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field failed.
func (e Errors) Any() bool { return len(e) > 0 }

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool { return emailRegex.MatchString(s) }

// IsUUID reports whether s is a valid UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateFormat, s)
	return t, err == nil
}

// OneOf reports whether s is one of the allowed values.
func OneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
