package scoring

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/transcript-scorer/internal/prompts"
	"github.com/jonathan/transcript-scorer/internal/types"
)

// notProvided is the sentinel sent when a value is absent, so the model never
// guesses at missing inputs.
const notProvided = "Not provided"

// buildPrompt assembles the single scoring request: transcript, serialized
// rubric, duration (or explicit sentinel), the scoring protocol from the
// prompt file, and optional precomputed metrics.
func buildPrompt(transcript string, rubric *types.Rubric, durationSeconds int, bundle *types.MetricsBundle) (string, error) {
	rubricJSON, err := json.MarshalIndent(rubric, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize rubric: %w", err)
	}

	duration := notProvided
	if durationSeconds > 0 {
		duration = strconv.Itoa(durationSeconds)
	}

	metricsStr := notProvided
	if bundle != nil {
		metricsJSON, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to serialize metrics: %w", err)
		}
		metricsStr = string(metricsJSON)
	}

	system := prompts.MustGet("scoring.json", "score_system")
	user := prompts.Format(prompts.MustGet("scoring.json", "score_user"), map[string]string{
		"Transcript": transcript,
		"Duration":   duration,
		"Rubric":     string(rubricJSON),
		"Metrics":    metricsStr,
	})

	return system + "\n\n" + user, nil
}
