package rubric

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jonathan/transcript-scorer/internal/llm"
	"github.com/jonathan/transcript-scorer/internal/prompts"
	"github.com/jonathan/transcript-scorer/internal/schemas"
	"github.com/jonathan/transcript-scorer/internal/types"
	"github.com/jonathan/transcript-scorer/internal/validation"
)

// DefaultMaxAttempts is the normalization retry bound.
const DefaultMaxAttempts = 3

// Normalizer converts raw rubric material into the canonical schema by
// calling the generative text service. Failed attempts are retried with
// exponential backoff; retries are blind resubmissions, the previous error is
// never fed back into the prompt.
type Normalizer struct {
	client      llm.Client
	maxAttempts int
	sleep       func(time.Duration)
}

// NewNormalizer creates a Normalizer with the given retry bound. A bound of
// zero or less uses DefaultMaxAttempts.
func NewNormalizer(client llm.Client, maxAttempts int) *Normalizer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Normalizer{
		client:      client,
		maxAttempts: maxAttempts,
		sleep:       time.Sleep,
	}
}

// Normalize converts raw rubric material into a canonical, structurally valid
// rubric. It returns on the first structurally valid reply; no semantic
// cross-checks (weight sums, duplicate names) are performed.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (*types.Rubric, error) {
	system := prompts.MustGet("rubric.json", "format_system")
	user := prompts.Format(prompts.MustGet("rubric.json", "format_user"), map[string]string{
		"RawRubric": raw,
	})
	prompt := system + "\n\n" + user

	var lastErr error
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		log.Printf("rubric: formatting attempt %d/%d", attempt, n.maxAttempts)

		text, err := n.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			lastErr = &ServiceError{Message: "rubric formatting request failed", Cause: err}
		} else {
			rubric, parseErr := parseRubric([]byte(llm.CleanJSONBlock(text)))
			if parseErr == nil {
				return rubric, nil
			}
			lastErr = parseErr
		}

		log.Printf("rubric: attempt %d failed: %v", attempt, lastErr)
		if attempt < n.maxAttempts {
			n.sleep(backoff(attempt))
		}
	}

	return nil, &ExhaustedError{Attempts: n.maxAttempts, Cause: lastErr}
}

// parseRubric deserializes and structurally validates a normalizer reply.
func parseRubric(data []byte) (*types.Rubric, error) {
	if err := schemas.Validate(schemas.RubricSchema, data); err != nil {
		return nil, &FormatError{Message: "reply does not match rubric schema", Cause: err}
	}

	var r types.Rubric
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &FormatError{Message: "reply is not valid JSON", Cause: err}
	}

	if err := validation.ValidateRubric(&r); err != nil {
		return nil, &FormatError{Message: "reply is structurally invalid", Cause: err}
	}
	return &r, nil
}

// backoff returns the wait before the next attempt: 2^attempt seconds.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}
