package api

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// FieldErrors aggregates validation failures per input field.
// Validation is not fail-fast: every failing rule contributes a message, and
// the whole map is returned in one response.
type FieldErrors map[string][]string

// Add appends a message to a field's error list.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Required adds an error when value is empty after trimming.
func (e FieldErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, fmt.Sprintf("The %s field is required.", fieldLabel(field)))
	}
}

// MaxLen adds an error when value exceeds max characters.
func (e FieldErrors) MaxLen(field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		e.Add(field, fmt.Sprintf("The %s field must not be greater than %d characters.", fieldLabel(field), limit))
	}
}

// Email adds an error when value is not a syntactically valid address.
// Empty values are not checked here; pair with Required when needed.
func (e FieldErrors) Email(field, value string) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		e.Add(field, fmt.Sprintf("The %s field must be a valid email address.", fieldLabel(field)))
	}
}

// fieldLabel turns a JSON field name into its human-readable message form
// ("first_name" -> "first name").
func fieldLabel(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
