package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/transcript-scorer/internal/llm"
	"github.com/jonathan/transcript-scorer/internal/types"
	"github.com/jonathan/transcript-scorer/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	script  []fakeReply
	calls   int
	prompts []string
}

type fakeReply struct {
	text string
	err  error
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := f.calls
	f.calls++
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	return f.script[i].text, f.script[i].err
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(_ llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                    { return nil }

const validResultJSON = `{
	"overall_score": 74.0,
	"word_count": 58,
	"per_criterion": [
		{
			"criterion": "Delivery",
			"metric": "Speech Rate (WPM)",
			"score": 6,
			"max_score": 10,
			"feedback": "A bit slow at 95 wpm.",
			"details": {"keywords_found": [], "calculated_value": 95, "reasoning": "95 wpm falls in the Slow band"}
		}
	]
}`

func testRubric() *types.Rubric {
	return &types.Rubric{Criteria: []types.Criterion{
		{Name: "Delivery", TotalWeight: 100, Metrics: []types.Metric{
			{MetricName: "Speech Rate (WPM)", Weight: 10},
		}},
	}}
}

func TestScore_Success(t *testing.T) {
	client := &fakeClient{script: []fakeReply{{text: validResultJSON}}}
	engine := NewEngine(client, 2)

	result, attempts, err := engine.Score(context.Background(), "hello world", testRubric(), 30, nil)
	require.NoError(t, err)

	assert.Equal(t, 74.0, result.OverallScore)
	assert.Equal(t, 58, result.WordCount)
	require.Len(t, result.PerCriterion, 1)
	assert.Equal(t, "Delivery", result.PerCriterion[0].Criterion)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 1, attempts)
}

func TestScore_FencedReply(t *testing.T) {
	client := &fakeClient{script: []fakeReply{{text: "```json\n" + validResultJSON + "\n```"}}}
	engine := NewEngine(client, 2)

	result, _, err := engine.Score(context.Background(), "hello", testRubric(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 74.0, result.OverallScore)
}

func TestScore_ChattyReplyTruncatedToBraces(t *testing.T) {
	chatty := "Sure! Here is the scoring result you asked for:\n" + validResultJSON + "\nLet me know if you need anything else."
	client := &fakeClient{script: []fakeReply{{text: chatty}}}
	engine := NewEngine(client, 2)

	result, _, err := engine.Score(context.Background(), "hello", testRubric(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 74.0, result.OverallScore)
}

func TestScore_BrokenMultilineStringRepaired(t *testing.T) {
	broken := strings.Replace(validResultJSON, "A bit slow at 95 wpm.", "A bit slow\nat 95 wpm.", 1)
	require.NotEqual(t, validResultJSON, broken)

	client := &fakeClient{script: []fakeReply{{text: broken}}}
	engine := NewEngine(client, 2)

	result, _, err := engine.Score(context.Background(), "hello", testRubric(), 0, nil)
	require.NoError(t, err)
	assert.Contains(t, result.PerCriterion[0].Feedback, "A bit slow at 95 wpm.")
}

func TestScore_ExhaustsAfterMaxAttempts(t *testing.T) {
	client := &fakeClient{script: []fakeReply{{text: "not json at all"}}}
	engine := NewEngine(client, 2)

	_, attempts, err := engine.Score(context.Background(), "hello", testRubric(), 0, nil)
	require.Error(t, err)
	assert.Equal(t, 2, attempts)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
	assert.Equal(t, 2, client.calls)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Snippet, "not json at all")
}

func TestScore_InvariantViolationRetriedNotClamped(t *testing.T) {
	outOfRange := strings.Replace(validResultJSON, `"overall_score": 74.0`, `"overall_score": 140.0`, 1)
	client := &fakeClient{script: []fakeReply{
		{text: outOfRange},
		{text: validResultJSON},
	}}
	engine := NewEngine(client, 2)

	result, _, err := engine.Score(context.Background(), "hello", testRubric(), 0, nil)
	require.NoError(t, err)

	// The invalid attempt was rejected and retried, never clamped into range
	assert.Equal(t, 74.0, result.OverallScore)
	assert.Equal(t, 2, client.calls)
}

func TestScore_InvariantViolationSurfacesValidationError(t *testing.T) {
	badEntry := strings.Replace(validResultJSON, `"score": 6`, `"score": 60`, 1)
	client := &fakeClient{script: []fakeReply{{text: badEntry}}}
	engine := NewEngine(client, 2)

	_, _, err := engine.Score(context.Background(), "hello", testRubric(), 0, nil)
	require.Error(t, err)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "per_criterion[0].score", verr.Field)
}

func TestScore_APIErrorRetried(t *testing.T) {
	client := &fakeClient{script: []fakeReply{
		{err: errors.New("429 rate limited")},
		{text: validResultJSON},
	}}
	engine := NewEngine(client, 2)

	result, _, err := engine.Score(context.Background(), "hello", testRubric(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 74.0, result.OverallScore)
	assert.Equal(t, 2, client.calls)
}

func TestBuildPrompt_DurationSentinel(t *testing.T) {
	prompt, err := buildPrompt("hello", testRubric(), 0, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "DURATION: Not provided seconds")

	prompt, err = buildPrompt("hello", testRubric(), 45, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "DURATION: 45 seconds")
}

func TestBuildPrompt_IncludesRubricAndMetrics(t *testing.T) {
	bundle := &types.MetricsBundle{WordCount: 42}
	prompt, err := buildPrompt("my transcript text", testRubric(), 10, bundle)
	require.NoError(t, err)

	assert.Contains(t, prompt, "my transcript text")
	assert.Contains(t, prompt, "Speech Rate (WPM)")
	assert.Contains(t, prompt, `"word_count": 42`)
}

func TestBuildPrompt_NoMetricsSentinel(t *testing.T) {
	prompt, err := buildPrompt("text", testRubric(), 10, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "PRECOMPUTED METRICS:\nNot provided")
}
