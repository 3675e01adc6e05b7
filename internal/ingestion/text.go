// Package ingestion turns uploaded transcript material into plain text
// suitable for metric computation and scoring.
package ingestion

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`[ \t]+`)

// CleanText normalizes raw transcript text: line endings become LF, runs of
// spaces collapse to one, control characters are dropped, and blank lines
// reduce to at most one separator. Spoken-word content carries no layout
// worth preserving.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = stripControl(line)
		line = multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = regexp.MustCompile(`\n\n+`).ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// stripControl removes non-printing characters that PDF extraction tends to
// leave behind. Tabs are kept for the space collapser to handle.
func stripControl(line string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, line)
}
