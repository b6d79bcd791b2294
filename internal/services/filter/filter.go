// Package filter holds the predicates shared by the list screens
package filter

import "strings"

// All is the select value that disables a filter
const All = "all"

// Search reports whether any field contains term, ignoring case. An empty
// term matches everything.
func Search(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Equal reports whether value equals the selected option, ignoring case. An
// empty selection or All matches everything.
func Equal(selected, value string) bool {
	if selected == "" || selected == All {
		return true
	}
	return strings.EqualFold(selected, value)
}

// Apply returns the items for which match is true, preserving order
func Apply[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}
