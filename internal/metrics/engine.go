// Package metrics computes deterministic, explainable linguistic features of
// a transcript: speech rate, vocabulary richness, filler-word density,
// grammar error density, sentiment, salutation tier, keyword presence, and
// flow. Given identical input the engine produces an identical bundle; the
// only nondeterminism floor is the pluggable grammar checker.
package metrics

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/transcript-scorer/internal/types"
)

// Engine computes a MetricsBundle from raw transcript text. The zero
// dependencies are allowed: a nil grammar checker degrades to the fixed
// fallback score and a nil sentiment analyzer yields zero polarity.
type Engine struct {
	grammar   GrammarChecker
	sentiment SentimentAnalyzer
}

// NewEngine creates a metrics engine with the given pluggable analyzers.
func NewEngine(grammar GrammarChecker, sentiment SentimentAnalyzer) *Engine {
	return &Engine{grammar: grammar, sentiment: sentiment}
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// fillerPatterns matches each filler lexicon entry at word boundaries,
// case-insensitively. Multi-word phrases tolerate arbitrary whitespace
// between their words. Built once; safe for concurrent use.
var fillerPatterns = buildFillerPatterns()

func buildFillerPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(fillerWords))
	for _, filler := range fillerWords {
		parts := strings.Fields(filler)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		patterns[filler] = regexp.MustCompile(`(?i)\b` + strings.Join(parts, `\s+`) + `\b`)
	}
	return patterns
}

// Compute calculates all metrics for a transcript. A negative duration is a
// type violation and fails fast; a zero duration means "not provided" and
// leaves WPM absent. Malformed but well-typed input (e.g. an empty
// transcript) never fails: it yields zeroed counts with each sub-score at
// its defined band.
func (e *Engine) Compute(ctx context.Context, transcript string, durationSeconds int) (*types.MetricsBundle, error) {
	if durationSeconds < 0 {
		return nil, fmt.Errorf("duration must be non-negative, got %d", durationSeconds)
	}

	words := strings.Fields(transcript)
	wordCount := len(words)
	lower := strings.ToLower(transcript)

	bundle := &types.MetricsBundle{
		WordCount:       wordCount,
		SentenceCount:   countSentences(transcript),
		DurationSeconds: durationSeconds,
	}

	if durationSeconds > 0 {
		wpm := float64(wordCount) / float64(durationSeconds) * 60
		category, score := scoreWPM(wpm)
		bundle.WPM = &types.WPMMetric{Value: wpm, Category: category, Score: score}
	}

	bundle.TTR = computeTTR(words)
	bundle.FillerWords = computeFillerWords(transcript, wordCount)
	bundle.Grammar = e.computeGrammar(ctx, transcript, wordCount)
	bundle.Sentiment = e.computeSentiment(transcript)
	bundle.Salutation = detectSalutation(lower)
	bundle.Keywords = detectKeywords(lower)
	bundle.Flow = checkFlow(lower)

	return bundle, nil
}

// countSentences counts non-empty segments split on runs of sentence-ending
// punctuation.
func countSentences(text string) int {
	count := 0
	for _, segment := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

// computeTTR calculates the type-token ratio over case-folded tokens.
func computeTTR(words []string) types.TTRMetric {
	if len(words) == 0 {
		return types.TTRMetric{Score: scoreTTR(0)}
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}

	ttr := float64(len(unique)) / float64(len(words))
	return types.TTRMetric{
		Value:       ttr,
		UniqueWords: len(unique),
		Score:       scoreTTR(ttr),
	}
}

// computeFillerWords counts filler lexicon occurrences at strict word
// boundaries and derives the filler rate as a percentage of tokens.
func computeFillerWords(transcript string, wordCount int) types.FillerMetric {
	found := make([]string, 0)
	count := 0

	for _, filler := range fillerWords {
		matches := fillerPatterns[filler].FindAllStringIndex(transcript, -1)
		if len(matches) > 0 {
			found = append(found, filler)
			count += len(matches)
		}
	}

	rate := 0.0
	if wordCount > 0 {
		rate = float64(count) / float64(wordCount) * 100
	}

	return types.FillerMetric{
		Count: count,
		Rate:  rate,
		Found: found,
		Score: scoreFillerRate(rate),
	}
}

// computeGrammar runs the external grammar checker and converts the issue
// count to an error density score. A checker failure degrades to the fixed
// fallback score rather than failing the bundle.
func (e *Engine) computeGrammar(ctx context.Context, transcript string, wordCount int) types.GrammarMetric {
	if wordCount == 0 {
		return types.GrammarMetric{Score: scoreGrammar(0)}
	}
	if e.grammar == nil {
		return types.GrammarMetric{Score: grammarFallbackScore * 10, Fallback: true}
	}

	issues, err := e.grammar.Check(ctx, transcript)
	if err != nil {
		return types.GrammarMetric{Score: grammarFallbackScore * 10, Fallback: true}
	}

	errorsPer100 := float64(len(issues)) / float64(wordCount) * 100
	return types.GrammarMetric{
		ErrorCount:   len(issues),
		ErrorsPer100: errorsPer100,
		Score:        scoreGrammar(errorsPer100),
	}
}

func (e *Engine) computeSentiment(transcript string) types.SentimentMetric {
	var scores PolarityScores
	if e.sentiment != nil {
		scores = e.sentiment.Polarity(transcript)
	}
	return types.SentimentMetric{
		Positive: scores.Positive,
		Neutral:  scores.Neutral,
		Negative: scores.Negative,
		Compound: scores.Compound,
		Score:    scoreSentiment(scores.Positive),
	}
}

// detectSalutation matches greeting phrases against the three ordered tiers.
// First matching tier wins.
func detectSalutation(lower string) types.SalutationMetric {
	for _, kw := range salutationExcellent {
		if strings.Contains(lower, kw) {
			return types.SalutationMetric{Level: "Excellent", Score: 5, Keywords: []string{kw}}
		}
	}
	for _, kw := range salutationGood {
		if strings.Contains(lower, kw) {
			return types.SalutationMetric{Level: "Good", Score: 4, Keywords: []string{kw}}
		}
	}
	for _, kw := range salutationNormal {
		if strings.Contains(lower, kw) {
			return types.SalutationMetric{Level: "Normal", Score: 2, Keywords: []string{kw}}
		}
	}
	return types.SalutationMetric{Level: "No Salutation", Score: 0, Keywords: []string{}}
}

// detectKeywords intersects the transcript with the fixed must-have and
// good-to-have vocabularies using case-insensitive substring matching.
func detectKeywords(lower string) types.KeywordMetric {
	matchAll := func(vocab []string) []string {
		found := make([]string, 0)
		for _, kw := range vocab {
			if strings.Contains(lower, kw) {
				found = append(found, kw)
			}
		}
		return found
	}
	return types.KeywordMetric{
		MustHaveFound:   matchAll(mustHaveKeywords),
		GoodToHaveFound: matchAll(goodToHaveKeywords),
	}
}

// checkFlow verifies the expected ordering: a salutation in the first 100
// characters, a self-reference in the first 200, and a closing in the last
// 100. All three are required.
func checkFlow(lower string) types.FlowMetric {
	head100 := lower
	if len(head100) > 100 {
		head100 = head100[:100]
	}
	head200 := lower
	if len(head200) > 200 {
		head200 = head200[:200]
	}
	tail100 := lower
	if len(tail100) > 100 {
		tail100 = tail100[len(tail100)-100:]
	}

	containsAny := func(s string, keywords []string) bool {
		for _, kw := range keywords {
			if strings.Contains(s, kw) {
				return true
			}
		}
		return false
	}

	followed := containsAny(head100, flowOpeningKeywords) &&
		containsAny(head200, flowSelfRefKeywords) &&
		containsAny(tail100, flowClosingKeywords)

	score := 0.0
	if followed {
		score = 5
	}
	return types.FlowMetric{Followed: followed, Score: score}
}
