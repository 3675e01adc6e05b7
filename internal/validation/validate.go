package validation

import (
	"fmt"

	"github.com/jonathan/transcript-scorer/internal/types"
)

// ValidateRubric checks that a rubric is structurally usable for scoring:
// non-nil, a non-empty criteria list, and top-level type correctness of each
// entry. Deep per-metric validation is deliberately not performed; weight
// semantics are advisory.
func ValidateRubric(r *types.Rubric) error {
	if r == nil {
		return &Error{Field: "rubric", Message: "rubric is missing"}
	}
	if len(r.Criteria) == 0 {
		return &Error{Field: "criteria", Message: "criteria list is empty"}
	}
	for i, c := range r.Criteria {
		if c.Name == "" {
			return &Error{Field: fmt.Sprintf("criteria[%d].name", i), Message: "criterion name is empty"}
		}
		if c.TotalWeight < 0 {
			return &Error{Field: fmt.Sprintf("criteria[%d].total_weight", i), Message: fmt.Sprintf("total_weight must be non-negative, got %v", c.TotalWeight)}
		}
	}
	return nil
}

// ValidateResult checks the numeric and structural invariants of a scoring
// result: overall_score in [0,100], non-negative word count, a non-empty
// per_criterion list, and 0 <= score <= max_score for every entry. Violations
// are never clamped or coerced.
func ValidateResult(res *types.ScoringResult) error {
	if res == nil {
		return &Error{Field: "result", Message: "result is missing"}
	}
	if res.OverallScore < 0 || res.OverallScore > 100 {
		return &Error{Field: "overall_score", Message: fmt.Sprintf("must be between 0 and 100, got %v", res.OverallScore)}
	}
	if res.WordCount < 0 {
		return &Error{Field: "word_count", Message: fmt.Sprintf("must be non-negative, got %d", res.WordCount)}
	}
	if len(res.PerCriterion) == 0 {
		return &Error{Field: "per_criterion", Message: "per_criterion list is empty"}
	}

	for i, cs := range res.PerCriterion {
		entry := fmt.Sprintf("per_criterion[%d]", i)
		if cs.Criterion == "" {
			return &Error{Field: entry + ".criterion", Message: "criterion name is empty"}
		}
		if cs.Metric == "" {
			return &Error{Field: entry + ".metric", Message: "metric name is empty"}
		}
		if cs.Score < 0 {
			return &Error{Field: entry + ".score", Message: fmt.Sprintf("must be non-negative, got %v", cs.Score)}
		}
		if cs.Score > cs.MaxScore {
			return &Error{Field: entry + ".score", Message: fmt.Sprintf("score %v exceeds max_score %v", cs.Score, cs.MaxScore)}
		}
	}
	return nil
}
