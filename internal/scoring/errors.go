// Package scoring produces a structured per-criterion score for one
// transcript/rubric pair via the generative text service, with defensive
// reply parsing and a bounded self-correction retry.
package scoring

import "fmt"

// snippetLen bounds how much raw reply text a ParseError carries.
const snippetLen = 200

// APICallError represents a generative service failure. It is retryable.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a reply that could not be parsed even after the
// repair passes. Snippet carries the start of the raw reply for logging.
type ParseError struct {
	Message string
	Snippet string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("parse error: %s (reply: %.200q): %v", e.Message, e.Snippet, e.Cause)
	}
	return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExhaustedError is returned when every self-correction attempt failed.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("scoring failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}
