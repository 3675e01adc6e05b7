// Package validation enforces the structural and numeric invariants of
// rubrics and scoring results. It is pure and stateless; the same checks run
// after rubric normalization and after every scoring attempt.
package validation

import "fmt"

// Error is the single, uniformly-shaped validation error. Field names exactly
// which field or entry failed so callers can log it without re-deriving.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
