// Package validation checks external input shapes before they are trusted.
// Every function is deterministic and side-effect free: nothing here touches
// the database, and all violated fields are reported at once so callers can
// surface every problem in a single response.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const (
	nameMinLen      = 3
	nameMaxLen      = 100
	diagnosisMinLen = 3
	passwordMinLen  = 6
	passwordMaxLen  = 100
)

// FieldError describes a single violated field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every violation found in one payload.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

// add appends a violation, optionally prefixing the field name (used by the
// batch validator to carry the element index).
func (e *FieldErrors) add(prefix, field, message string) {
	*e = append(*e, FieldError{Field: prefix + field, Message: message})
}

// orNil returns the collected errors as an error, or nil when none were found.
func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// dateLayouts are the accepted wire formats for calendar dates. Plain dates
// come from forms, RFC 3339 timestamps from re-imported CSV exports.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate coerces an ISO-8601 date string into a time value.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a valid ISO-8601 date", value)
}

func validName(name string) bool {
	return len(name) >= nameMinLen && len(name) <= nameMaxLen
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validPassword(password string) bool {
	return len(password) >= passwordMinLen && len(password) <= passwordMaxLen
}
