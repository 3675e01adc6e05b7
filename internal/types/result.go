package types

// ScoringResult is the validated output of a scoring run.
// OverallScore is always in [0,100] and PerCriterion is never empty once
// the result has passed validation.
type ScoringResult struct {
	OverallScore float64          `json:"overall_score"`
	WordCount    int              `json:"word_count"`
	PerCriterion []CriterionScore `json:"per_criterion"`
}

// CriterionScore is the score and feedback for a single rubric metric.
type CriterionScore struct {
	Criterion string       `json:"criterion"`
	Metric    string       `json:"metric"`
	Score     float64      `json:"score"`
	MaxScore  float64      `json:"max_score"`
	Feedback  string       `json:"feedback"`
	Details   ScoreDetails `json:"details"`
}

// ScoreDetails carries the evidence behind a criterion score.
type ScoreDetails struct {
	KeywordsFound   []string `json:"keywords_found"`
	CalculatedValue float64  `json:"calculated_value"`
	Reasoning       string   `json:"reasoning"`
}
