package scoring

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonathan/transcript-scorer/internal/llm"
	"github.com/jonathan/transcript-scorer/internal/schemas"
	"github.com/jonathan/transcript-scorer/internal/types"
	"github.com/jonathan/transcript-scorer/internal/validation"
)

// DefaultMaxAttempts is the self-correction retry bound. Each attempt is an
// independent request/parse/validate cycle; the previous failure is not fed
// back into the next prompt.
const DefaultMaxAttempts = 2

// Engine scores one transcript/rubric pair through the generative text
// service.
type Engine struct {
	client      llm.Client
	maxAttempts int
}

// NewEngine creates a scoring engine with the given retry bound. A bound of
// zero or less uses DefaultMaxAttempts.
func NewEngine(client llm.Client, maxAttempts int) *Engine {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Engine{client: client, maxAttempts: maxAttempts}
}

// Score produces a validated ScoringResult plus the number of service calls
// it made. The metrics bundle is optional; when present its values are
// handed to the model as precomputed inputs. On repeated failure Score
// returns an ExhaustedError wrapping the last underlying error.
func (e *Engine) Score(ctx context.Context, transcript string, rubric *types.Rubric, durationSeconds int, bundle *types.MetricsBundle) (*types.ScoringResult, int, error) {
	prompt, err := buildPrompt(transcript, rubric, durationSeconds, bundle)
	if err != nil {
		return nil, 0, err
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		log.Printf("scoring: attempt %d/%d", attempt, e.maxAttempts)

		reply, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
		if err != nil {
			lastErr = &APICallError{Message: "scoring request failed", Cause: err}
			log.Printf("scoring: attempt %d failed: %v", attempt, lastErr)
			continue
		}

		result, err := parseResult(reply)
		if err == nil {
			return result, attempt, nil
		}
		lastErr = err
		log.Printf("scoring: attempt %d failed: %v", attempt, lastErr)
	}

	return nil, e.maxAttempts, &ExhaustedError{Attempts: e.maxAttempts, Cause: lastErr}
}

// parseResult defensively parses a reply into a validated ScoringResult:
// code fences are stripped, then the reply is truncated to its outermost
// brace pair, then unterminated multi-line strings are merged. A reply that
// parses but violates the result invariants is rejected, never clamped.
func parseResult(reply string) (*types.ScoringResult, error) {
	cleaned := llm.CleanJSONBlock(reply)

	candidate, ok := tryDecode(cleaned)
	if !ok {
		candidate, ok = tryDecode(truncateToBraces(cleaned))
	}
	if !ok {
		candidate, ok = tryDecode(mergeBrokenStrings(truncateToBraces(cleaned)))
	}
	if !ok {
		return nil, &ParseError{
			Message: "reply is not valid JSON after repair",
			Snippet: snippet(reply),
		}
	}

	if err := schemas.Validate(schemas.ScoringResultSchema, []byte(candidate)); err != nil {
		return nil, &ParseError{Message: "reply does not match result schema", Snippet: snippet(reply), Cause: err}
	}

	var result types.ScoringResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, &ParseError{Message: "failed to decode result", Snippet: snippet(reply), Cause: err}
	}

	if err := validation.ValidateResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// tryDecode checks that s is syntactically valid JSON and returns it for
// further processing.
func tryDecode(s string) (string, bool) {
	return s, json.Valid([]byte(s))
}

func snippet(s string) string {
	if len(s) > snippetLen {
		return s[:snippetLen]
	}
	return s
}
