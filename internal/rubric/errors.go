// Package rubric loads scoring rubrics and normalizes arbitrary rubric
// material into the canonical schema via the generative text service.
package rubric

import "fmt"

// ServiceError represents an upstream generative service failure while
// normalizing a rubric. It is retryable.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rubric service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rubric service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// FormatError represents a normalizer reply that failed to parse or failed
// structural validation. It is retryable.
type FormatError struct {
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rubric format error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rubric format error: %s", e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// ExhaustedError is returned when normalization failed on every attempt.
// It wraps the last failure and names the attempt count.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to format rubric after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}
