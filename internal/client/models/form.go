package models

import "strings"

// FormState is user-entered, unvalidated input keyed by field name.
// Values are kept raw; parsing belongs to validation and payload builders.
type FormState map[string]string

// Get returns the raw value of field, or "" when absent.
func (f FormState) Get(field string) string {
	return f[field]
}

// Trimmed returns the value of field with surrounding whitespace removed.
func (f FormState) Trimmed(field string) string {
	return strings.TrimSpace(f[field])
}

// Set stores value under field and returns f for chaining.
func (f FormState) Set(field, value string) FormState {
	f[field] = value
	return f
}

// Clone returns an independent copy of f.
func (f FormState) Clone() FormState {
	out := make(FormState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
