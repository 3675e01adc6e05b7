package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/transcript-scorer/internal/llm"
	"github.com/jonathan/transcript-scorer/internal/metrics"
	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/scoring"
	"github.com/jonathan/transcript-scorer/internal/types"
)

// DefaultMaxRetries is the orchestrator-level retry bound over the scoring
// segment. Each retry restarts the segment from scratch, on top of the
// scoring engine's own internal attempts.
const DefaultMaxRetries = 3

// Stage identifies where in the pipeline a run currently is.
type Stage string

const (
	StageExtract  Stage = "extract"
	StageRubric   Stage = "rubric"
	StageMetrics  Stage = "metrics"
	StageScore    Stage = "score"
	StageValidate Stage = "validate"
	StageDone     Stage = "done"
	StageFailed   Stage = "failed"
)

// ProgressEvent is emitted as the pipeline moves between stages.
type ProgressEvent struct {
	Stage   Stage
	Attempt int
	Message string
}

// ProgressFunc receives pipeline progress. It is called synchronously and
// must not block.
type ProgressFunc func(ProgressEvent)

// Request is one scoring job. A nil Rubric selects the embedded default.
// DurationSeconds of zero means the recording duration is unknown, which
// disables pace scoring.
type Request struct {
	Transcript      string
	Rubric          *rubric.Input
	DurationSeconds int
}

// Response carries everything a run produced, including the deterministic
// metrics bundle used as model input.
type Response struct {
	Result  *types.ScoringResult
	Rubric  *types.Rubric
	Metrics *types.MetricsBundle
}

// Coordinator runs the full pipeline: rubric resolution, deterministic
// metrics, scoring, and an outer retry over the scoring segment. All fields
// are set in NewCoordinator and never mutated afterwards; one Coordinator is
// safe for concurrent Process calls.
type Coordinator struct {
	metrics       *metrics.Engine
	scorer        *scoring.Engine
	normalizer    *rubric.Normalizer
	maxRetries    int
	scoreAttempts int
	sleep         func(time.Duration)
	onProgress    ProgressFunc
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithMaxRetries overrides the orchestrator retry bound.
func WithMaxRetries(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// WithScoreAttempts overrides the scoring engine's self-correction bound.
func WithScoreAttempts(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.scoreAttempts = n
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Coordinator) { c.onProgress = fn }
}

// NewCoordinator wires a pipeline over one shared service client. The
// normalizer is built here too; constructing it is cheap and no service
// call happens until a raw rubric actually needs it.
func NewCoordinator(client llm.Client, metricsEngine *metrics.Engine, opts ...Option) *Coordinator {
	c := &Coordinator{
		metrics:       metricsEngine,
		maxRetries:    DefaultMaxRetries,
		scoreAttempts: scoring.DefaultMaxAttempts,
		sleep:         time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scorer = scoring.NewEngine(client, c.scoreAttempts)
	c.normalizer = rubric.NewNormalizer(client, rubric.DefaultMaxAttempts)
	return c
}

func (c *Coordinator) emit(stage Stage, attempt int, msg string) {
	if c.onProgress != nil {
		c.onProgress(ProgressEvent{Stage: stage, Attempt: attempt, Message: msg})
	}
}

// Process runs a request through the pipeline. Input problems return an
// *InputError before any retryable work; repeated scoring failure returns an
// *ExhaustedError aggregating both retry levels.
func (c *Coordinator) Process(ctx context.Context, req Request) (*Response, error) {
	c.emit(StageExtract, 0, "validating input")
	if strings.TrimSpace(req.Transcript) == "" {
		c.emit(StageFailed, 0, "empty transcript")
		return nil, &InputError{Message: "transcript is empty"}
	}
	if req.DurationSeconds < 0 {
		c.emit(StageFailed, 0, "negative duration")
		return nil, &InputError{Message: "duration_seconds must not be negative"}
	}

	resolved, err := c.resolveRubric(ctx, req.Rubric)
	if err != nil {
		c.emit(StageFailed, 0, "rubric resolution failed")
		return nil, err
	}

	c.emit(StageMetrics, 0, "computing deterministic metrics")
	bundle, err := c.metrics.Compute(ctx, req.Transcript, req.DurationSeconds)
	if err != nil {
		c.emit(StageFailed, 0, "metrics computation failed")
		return nil, &InputError{Message: "metrics computation failed", Cause: err}
	}

	result, err := c.scoreWithRetry(ctx, req, resolved, bundle)
	if err != nil {
		c.emit(StageFailed, 0, "scoring exhausted")
		return nil, err
	}

	c.emit(StageDone, 0, "scoring complete")
	return &Response{Result: result, Rubric: resolved, Metrics: bundle}, nil
}

// resolveRubric turns the request's rubric input into a canonical rubric.
// Canonical inputs bypass the normalizer entirely.
func (c *Coordinator) resolveRubric(ctx context.Context, in *rubric.Input) (*types.Rubric, error) {
	if in == nil {
		c.emit(StageRubric, 0, "using default rubric")
		r, err := rubric.LoadDefault()
		if err != nil {
			return nil, &InputError{Message: "default rubric unavailable", Cause: err}
		}
		return r, nil
	}

	if !in.NeedsNormalization() {
		c.emit(StageRubric, 0, "rubric already canonical")
		return in.Canonical, nil
	}

	if strings.TrimSpace(in.Raw) == "" {
		return nil, &InputError{Message: "rubric is empty"}
	}

	c.emit(StageRubric, 0, "normalizing rubric")
	return c.normalizer.Normalize(ctx, in.Raw)
}

// scoreWithRetry restarts the scoring segment up to the orchestrator bound,
// backing off between restarts. Every restart is blind.
func (c *Coordinator) scoreWithRetry(ctx context.Context, req Request, resolved *types.Rubric, bundle *types.MetricsBundle) (*types.ScoringResult, error) {
	var lastErr error
	calls := 0

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		c.emit(StageScore, attempt, "scoring transcript")
		log.Printf("pipeline: scoring attempt %d/%d", attempt, c.maxRetries)

		result, segmentCalls, err := c.scorer.Score(ctx, req.Transcript, resolved, req.DurationSeconds, bundle)
		calls += segmentCalls
		if err == nil {
			c.emit(StageValidate, attempt, "checking rubric coverage")
			err = checkCoverage(result, resolved)
			if err == nil {
				return result, nil
			}
		}

		lastErr = err
		log.Printf("pipeline: scoring attempt %d failed: %v", attempt, lastErr)
		if attempt < c.maxRetries {
			c.sleep(backoff(attempt))
		}
	}

	return nil, &ExhaustedError{Retries: c.maxRetries, Calls: calls, Cause: lastErr}
}

// checkCoverage enforces that the result addresses every rubric criterion.
// The model may legitimately emit extra rows (one per metric), so only
// missing criteria are a failure.
func checkCoverage(result *types.ScoringResult, r *types.Rubric) error {
	covered := make(map[string]bool, len(result.PerCriterion))
	for _, cs := range result.PerCriterion {
		covered[strings.ToLower(strings.TrimSpace(cs.Criterion))] = true
	}
	for _, criterion := range r.Criteria {
		if !covered[strings.ToLower(strings.TrimSpace(criterion.Name))] {
			return &coverageError{criterion: criterion.Name}
		}
	}
	return nil
}

type coverageError struct {
	criterion string
}

func (e *coverageError) Error() string {
	return "result is missing rubric criterion " + e.criterion
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}
