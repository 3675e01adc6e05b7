package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GrammarIssue is a single problem flagged by the grammar checker.
type GrammarIssue struct {
	Message string
	RuleID  string
	Offset  int
	Length  int
}

// GrammarChecker flags grammatical issues in a text. Implementations must be
// safe for concurrent use; the engine treats them as
// deterministic-for-practical-purposes.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]GrammarIssue, error)
}

// LanguageToolChecker checks grammar against a LanguageTool HTTP endpoint
// (self-hosted or api.languagetool.org).
type LanguageToolChecker struct {
	endpoint   string
	language   string
	httpClient *http.Client
}

// NewLanguageToolChecker creates a checker against the given base endpoint,
// e.g. "https://api.languagetool.org".
func NewLanguageToolChecker(endpoint string) *LanguageToolChecker {
	return &LanguageToolChecker{
		endpoint:   strings.TrimRight(endpoint, "/"),
		language:   "en-US",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// languageToolResponse mirrors the subset of the /v2/check response we use.
type languageToolResponse struct {
	Matches []struct {
		Message string `json:"message"`
		Offset  int    `json:"offset"`
		Length  int    `json:"length"`
		Rule    struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check sends the text to the LanguageTool check endpoint and returns the
// flagged issues.
func (c *LanguageToolChecker) Check(ctx context.Context, text string) ([]GrammarIssue, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build grammar check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar check request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grammar check returned status %d", resp.StatusCode)
	}

	var parsed languageToolResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse grammar check response: %w", err)
	}

	issues := make([]GrammarIssue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		issues = append(issues, GrammarIssue{
			Message: m.Message,
			RuleID:  m.Rule.ID,
			Offset:  m.Offset,
			Length:  m.Length,
		})
	}
	return issues, nil
}
