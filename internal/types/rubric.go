// Package types provides type definitions for structured data used throughout the transcript-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Rubric is the canonical scoring rubric: an ordered list of weighted criteria.
// A rubric with no criteria is invalid.
type Rubric struct {
	Criteria []Criterion `json:"criteria"`
}

// Criterion groups related metrics under a named category with a weight budget.
type Criterion struct {
	Name        string   `json:"name"`
	TotalWeight float64  `json:"total_weight"`
	Metrics     []Metric `json:"metrics"`
}

// Metric is a single measurable aspect of a transcript within a criterion.
type Metric struct {
	MetricName   string        `json:"metric_name"`
	Weight       float64       `json:"weight"`
	ScoringRules []ScoringRule `json:"scoring_rules,omitempty"`
	Keywords     []string      `json:"keywords,omitempty"`
}

// ScoringRule maps a threshold or range on the measured value to a score.
type ScoringRule struct {
	Range string  `json:"range"`
	Score float64 `json:"score"`
}
