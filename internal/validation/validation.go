// Package validation holds the wizard's rule library: stateless validators,
// one family per record type. Validators return field-scoped errors as values
// and never mutate the candidate record; callers run them before committing a
// mutation to the wizard store.
package validation

// FieldError describes a single rule violation on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating one record.
type Result []FieldError

// Valid reports whether no rule was violated.
func (r Result) Valid() bool {
	return len(r) == 0
}

// add appends a violation and returns the extended result.
func (r Result) add(field, message string) Result {
	return append(r, FieldError{Field: field, Message: message})
}

// isCurrencyCode reports whether s is a 3-letter uppercase ISO-4217 style code.
func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
