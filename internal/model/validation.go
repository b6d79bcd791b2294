package model

import (
	"sort"
	"strings"
)

// ValidationError collects per-field input errors
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field. The first message for a field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Err returns e if any field failed, nil otherwise
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the field messages ordered by field name
func (e *ValidationError) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return msgs
}

func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		b.WriteRune(r[0])
	}
	if b.Len() == 0 {
		return "??"
	}
	return strings.ToUpper(b.String())
}
