package metrics

// Band tables mapping raw measurements onto ordinal sub-scores. The
// breakpoints are part of the scoring contract, not tuning knobs.

// WPM categories.
const (
	WPMTooSlow = "Too Slow"
	WPMSlow    = "Slow"
	WPMIdeal   = "Ideal"
	WPMFast    = "Fast"
	WPMTooFast = "Too Fast"
)

// scoreWPM categorizes a speech rate and returns its sub-score. The canonical
// table is threshold-based: bands are closed below by >= so fractional rates
// such as 110.5 fall in the band of the next lower threshold (Slow).
func scoreWPM(wpm float64) (string, float64) {
	switch {
	case wpm >= 161:
		return WPMTooFast, 2
	case wpm >= 141:
		return WPMFast, 6
	case wpm >= 111:
		return WPMIdeal, 10
	case wpm >= 81:
		return WPMSlow, 6
	default:
		return WPMTooSlow, 2
	}
}

// scoreTTR maps a type-token ratio onto a 2-10 sub-score.
func scoreTTR(ttr float64) float64 {
	switch {
	case ttr >= 0.9:
		return 10
	case ttr >= 0.7:
		return 8
	case ttr >= 0.5:
		return 6
	case ttr >= 0.3:
		return 4
	default:
		return 2
	}
}

// scoreFillerRate maps a filler-word rate (percent of tokens) onto a 3-15 sub-score.
func scoreFillerRate(rate float64) float64 {
	switch {
	case rate <= 3:
		return 15
	case rate <= 6:
		return 12
	case rate <= 9:
		return 9
	case rate <= 12:
		return 6
	default:
		return 3
	}
}

// scoreSentiment maps the positive polarity component onto a 3-15 sub-score.
func scoreSentiment(positive float64) float64 {
	switch {
	case positive >= 0.9:
		return 15
	case positive >= 0.7:
		return 12
	case positive >= 0.5:
		return 9
	case positive >= 0.3:
		return 6
	default:
		return 3
	}
}

// grammarFallbackScore is used on a 0-1 scale when the grammar checker is
// unreachable; the whole pipeline must not fail on a checker outage.
const grammarFallbackScore = 0.8

// scoreGrammar converts an error density (errors per 100 words) onto a 0-10
// scale using the rubric formula: max(0, 1 - min(density/10, 1)) * 10.
func scoreGrammar(errorsPer100 float64) float64 {
	penalty := errorsPer100 / 10
	if penalty > 1 {
		penalty = 1
	}
	score := 1 - penalty
	if score < 0 {
		score = 0
	}
	return score * 10
}
