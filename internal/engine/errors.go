package engine

import "fmt"

// ValidationError reports a malformed or missing required item field.
// Collection operations recover from it by skipping the offending item;
// single-item operations return it to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item: %s %s", e.Field, e.Reason)
}

// EmptyInputError reports an empty inventory or suggestion list passed to an
// aggregate operation. Callers render a neutral empty state from it; it is
// never fatal.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: empty input", e.Op)
}
