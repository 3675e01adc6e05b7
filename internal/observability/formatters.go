// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/transcript-scorer/internal/pipeline"
	"github.com/jonathan/transcript-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMetrics outputs a human-readable summary of the deterministic
// linguistic metrics.
func (p *Printer) PrintMetrics(bundle *types.MetricsBundle) {
	if bundle == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Words:      %d\n", bundle.WordCount))
	sb.WriteString(fmt.Sprintf("Sentences:  %d\n", bundle.SentenceCount))
	if bundle.WPM != nil {
		sb.WriteString(fmt.Sprintf("Pace:       %.1f wpm (%s, %.0f pts)\n", bundle.WPM.Value, bundle.WPM.Category, bundle.WPM.Score))
	} else {
		sb.WriteString("Pace:       n/a (no duration)\n")
	}
	sb.WriteString(fmt.Sprintf("Vocabulary: TTR %.2f, %d unique (%.0f pts)\n", bundle.TTR.Value, bundle.TTR.UniqueWords, bundle.TTR.Score))

	sb.WriteString(fmt.Sprintf("Fillers:    %d (%.1f per 100 words, %.0f pts)\n", bundle.FillerWords.Count, bundle.FillerWords.Rate, bundle.FillerWords.Score))
	if len(bundle.FillerWords.Found) > 0 {
		found := strings.Join(bundle.FillerWords.Found, ", ")
		if len(found) > 40 {
			found = found[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("            %s\n", found))
	}

	if bundle.Grammar.Fallback {
		sb.WriteString(fmt.Sprintf("Grammar:    checker unavailable (%.1f pts fallback)\n", bundle.Grammar.Score))
	} else {
		sb.WriteString(fmt.Sprintf("Grammar:    %d issues (%.1f per 100 words, %.1f pts)\n", bundle.Grammar.ErrorCount, bundle.Grammar.ErrorsPer100, bundle.Grammar.Score))
	}

	sb.WriteString(fmt.Sprintf("Sentiment:  %.2f positive, %.2f compound (%.0f pts)\n", bundle.Sentiment.Positive, bundle.Sentiment.Compound, bundle.Sentiment.Score))
	sb.WriteString(fmt.Sprintf("Greeting:   %s (%.0f pts)\n", bundle.Salutation.Level, bundle.Salutation.Score))

	if len(bundle.Keywords.MustHaveFound) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords:   %s\n", strings.Join(bundle.Keywords.MustHaveFound, ", ")))
	} else {
		sb.WriteString("Keywords:   none found\n")
	}

	if bundle.Flow.Followed {
		sb.WriteString("Flow:       opening/introduction/closing in order\n")
	} else {
		sb.WriteString("Flow:       expected structure not followed\n")
	}

	p.printBox("TRANSCRIPT METRICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResult outputs the validated scoring result with per-criterion rows.
func (p *Printer) PrintResult(result *types.ScoringResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall: %.1f / 100   (%d words)\n", result.OverallScore, result.WordCount))

	byCriterion := make(map[string][]types.CriterionScore)
	var order []string
	for _, cs := range result.PerCriterion {
		if _, seen := byCriterion[cs.Criterion]; !seen {
			order = append(order, cs.Criterion)
		}
		byCriterion[cs.Criterion] = append(byCriterion[cs.Criterion], cs)
	}

	for _, criterion := range order {
		sb.WriteString("\n")
		sb.WriteString(criterion + ":\n")
		for _, cs := range byCriterion[criterion] {
			sb.WriteString(fmt.Sprintf("  %-24s %5.1f/%-5.1f\n", cs.Metric, cs.Score, cs.MaxScore))
		}
	}

	p.printBox("SCORING RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedback outputs the model's per-metric feedback lines, truncated to
// the first few rows.
func (p *Printer) PrintFeedback(result *types.ScoringResult) {
	if result == nil || len(result.PerCriterion) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(result.PerCriterion), maxItemsToShow)
	for i := 0; i < count; i++ {
		cs := result.PerCriterion[i]
		sb.WriteString(fmt.Sprintf("%s / %s:\n", cs.Criterion, cs.Metric))
		sb.WriteString(fmt.Sprintf("  %s\n", cs.Feedback))
	}
	if len(result.PerCriterion) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(result.PerCriterion)-maxItemsToShow))
	}

	p.printBox("FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProgress writes one line per pipeline stage transition. It satisfies
// pipeline.ProgressFunc.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(ev pipeline.ProgressEvent) {
	if ev.Attempt > 0 {
		fmt.Fprintf(p.out, "→ [%s] attempt %d: %s\n", ev.Stage, ev.Attempt, ev.Message)
		return
	}
	fmt.Fprintf(p.out, "→ [%s] %s\n", ev.Stage, ev.Message)
}
