// Package pipeline provides the high-level orchestration for transcript
// scoring: input extraction, rubric normalization, scoring, and validation,
// with an outer retry over the scoring segment.
package pipeline

import "fmt"

// InputError represents a user-facing input problem (empty transcript,
// unsupported rubric shape, malformed default rubric). It is never retried.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("input error: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// ExhaustedError is the single aggregated failure surfaced when the scoring
// segment failed on every orchestrator attempt. Retries counts full
// restarts of the segment; Calls counts the underlying scoring requests
// across both retry levels.
type ExhaustedError struct {
	Retries int
	Calls   int
	Cause   error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("scoring failed after %d orchestrator attempts (%d scoring calls total): %v", e.Retries, e.Calls, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}
