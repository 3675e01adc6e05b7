package types

// MetricsBundle holds all deterministic linguistic features computed for one
// transcript. It is computed fresh per request and never cached across
// transcripts.
type MetricsBundle struct {
	WordCount       int `json:"word_count"`
	SentenceCount   int `json:"sentence_count"`
	DurationSeconds int `json:"duration_seconds,omitempty"`

	// WPM is nil when no duration was supplied.
	WPM         *WPMMetric       `json:"wpm,omitempty"`
	TTR         TTRMetric        `json:"ttr"`
	FillerWords FillerMetric     `json:"filler_words"`
	Grammar     GrammarMetric    `json:"grammar"`
	Sentiment   SentimentMetric  `json:"sentiment"`
	Salutation  SalutationMetric `json:"salutation"`
	Keywords    KeywordMetric    `json:"keyword_presence"`
	Flow        FlowMetric       `json:"flow"`
}

// WPMMetric is the speech-rate measurement (words per minute).
type WPMMetric struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// TTRMetric is the vocabulary-richness measurement (type-token ratio).
type TTRMetric struct {
	Value       float64 `json:"value"`
	UniqueWords int     `json:"unique_words"`
	Score       float64 `json:"score"`
}

// FillerMetric counts conversational filler words.
type FillerMetric struct {
	Count int      `json:"count"`
	Rate  float64  `json:"rate"`
	Found []string `json:"found"`
	Score float64  `json:"score"`
}

// GrammarMetric holds the grammar-checker result. Fallback is true when the
// checker was unreachable and the fixed fallback score was used instead.
type GrammarMetric struct {
	ErrorCount   int     `json:"error_count"`
	ErrorsPer100 float64 `json:"errors_per_100"`
	Score        float64 `json:"score"`
	Fallback     bool    `json:"fallback,omitempty"`
}

// SentimentMetric holds polarity components and the derived sub-score.
type SentimentMetric struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
	Compound float64 `json:"compound"`
	Score    float64 `json:"score"`
}

// SalutationMetric records the detected greeting tier.
type SalutationMetric struct {
	Level    string   `json:"detected"`
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords"`
}

// KeywordMetric records which fixed vocabulary keywords were present.
type KeywordMetric struct {
	MustHaveFound   []string `json:"must_have_found"`
	GoodToHaveFound []string `json:"good_to_have_found"`
}

// FlowMetric records whether the transcript follows the expected
// salutation/introduction/closing order.
type FlowMetric struct {
	Followed bool    `json:"followed"`
	Score    float64 `json:"score"`
}
