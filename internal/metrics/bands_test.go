package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreWPM_Bands(t *testing.T) {
	tests := []struct {
		wpm      float64
		category string
		score    float64
	}{
		{0, WPMTooSlow, 2},
		{72, WPMTooSlow, 2},
		{80.9, WPMTooSlow, 2},
		{81, WPMSlow, 6},
		{110, WPMSlow, 6},
		{110.5, WPMSlow, 6}, // fractional rates belong to the lower threshold's band
		{111, WPMIdeal, 10},
		{140, WPMIdeal, 10},
		{140.9, WPMIdeal, 10},
		{141, WPMFast, 6},
		{160, WPMFast, 6},
		{161, WPMTooFast, 2},
		{250, WPMTooFast, 2},
	}

	for _, tt := range tests {
		category, score := scoreWPM(tt.wpm)
		assert.Equal(t, tt.category, category, "category for wpm=%v", tt.wpm)
		assert.Equal(t, tt.score, score, "score for wpm=%v", tt.wpm)
	}
}

func TestScoreTTR_Bands(t *testing.T) {
	tests := []struct {
		ttr   float64
		score float64
	}{
		{0, 2},
		{0.29, 2},
		{0.3, 4},
		{0.49, 4},
		{0.5, 6},
		{0.69, 6},
		{0.7, 8},
		{0.89, 8},
		{0.9, 10},
		{1.0, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.score, scoreTTR(tt.ttr), "ttr=%v", tt.ttr)
	}
}

func TestScoreFillerRate_Bands(t *testing.T) {
	tests := []struct {
		rate  float64
		score float64
	}{
		{0, 15},
		{3, 15},
		{3.01, 12},
		{6, 12},
		{6.5, 9},
		{9, 9},
		{9.1, 6},
		{12, 6},
		{12.1, 3},
		{50, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.score, scoreFillerRate(tt.rate), "rate=%v", tt.rate)
	}
}

func TestScoreSentiment_Bands(t *testing.T) {
	tests := []struct {
		positive float64
		score    float64
	}{
		{0, 3},
		{0.29, 3},
		{0.3, 6},
		{0.49, 6},
		{0.5, 9},
		{0.69, 9},
		{0.7, 12},
		{0.89, 12},
		{0.9, 15},
		{1.0, 15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.score, scoreSentiment(tt.positive), "positive=%v", tt.positive)
	}
}

func TestScoreGrammar(t *testing.T) {
	assert.Equal(t, 10.0, scoreGrammar(0))
	assert.InDelta(t, 5.0, scoreGrammar(5), 1e-9)
	assert.Equal(t, 0.0, scoreGrammar(10))
	// Density beyond 10 errors per 100 words is clamped, never negative
	assert.Equal(t, 0.0, scoreGrammar(50))
}

// Band functions must be monotonic step functions: as the input increases
// across a boundary the score moves in one direction only.
func TestBands_Monotonic(t *testing.T) {
	prev := scoreTTR(0)
	for ttr := 0.0; ttr <= 1.0; ttr += 0.01 {
		cur := scoreTTR(ttr)
		assert.GreaterOrEqual(t, cur, prev, "ttr score decreased at %v", ttr)
		prev = cur
	}

	prevFiller := scoreFillerRate(0)
	for rate := 0.0; rate <= 20.0; rate += 0.1 {
		cur := scoreFillerRate(rate)
		assert.LessOrEqual(t, cur, prevFiller, "filler score increased at %v", rate)
		prevFiller = cur
	}

	prevGrammar := scoreGrammar(0)
	for density := 0.0; density <= 15.0; density += 0.1 {
		cur := scoreGrammar(density)
		assert.LessOrEqual(t, cur, prevGrammar+1e-9, "grammar score increased at %v", density)
		prevGrammar = cur
	}
}
