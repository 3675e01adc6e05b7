package scoring

import "strings"

// Repair passes applied, in order, to replies that fail to parse as JSON.
// These are a resilience layer behind the primary JSON-mode request path,
// not the main mechanism.

// truncateToBraces cuts a reply down to the substring between the first '{'
// and the last '}'. Returns the input unchanged when no brace pair exists.
func truncateToBraces(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

// mergeBrokenStrings joins lines that fall inside an unterminated JSON string
// value. A line with an odd count of unescaped quotes toggles "inside a
// string"; subsequent lines are merged into the open line until the string
// closes.
func mergeBrokenStrings(s string) string {
	lines := strings.Split(s, "\n")
	merged := make([]string, 0, len(lines))
	inString := false

	for _, line := range lines {
		if inString && len(merged) > 0 {
			merged[len(merged)-1] += " " + strings.TrimSpace(line)
		} else {
			merged = append(merged, line)
		}
		if countUnescapedQuotes(line)%2 == 1 {
			inString = !inString
		}
	}

	return strings.Join(merged, "\n")
}

// countUnescapedQuotes counts '"' occurrences not preceded by a backslash.
func countUnescapedQuotes(line string) int {
	count := 0
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			count++
		}
	}
	return count
}
