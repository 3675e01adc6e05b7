package metrics

import "github.com/jonreiter/govader"

// PolarityScores holds the components produced by a sentiment analyzer.
type PolarityScores struct {
	Positive float64
	Neutral  float64
	Negative float64
	Compound float64
}

// SentimentAnalyzer produces polarity scores for a text. Implementations must
// be safe for concurrent use.
type SentimentAnalyzer interface {
	Polarity(text string) PolarityScores
}

// VaderAnalyzer is a SentimentAnalyzer backed by the VADER lexicon model.
// It is fully in-process and deterministic.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer constructs a VADER analyzer. The underlying lexicon is
// loaded once; the analyzer should be shared across requests.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the VADER polarity components for the text.
func (v *VaderAnalyzer) Polarity(text string) PolarityScores {
	s := v.analyzer.PolarityScores(text)
	return PolarityScores{
		Positive: s.Positive,
		Neutral:  s.Neutral,
		Negative: s.Negative,
		Compound: s.Compound,
	}
}
