package rubric

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/transcript-scorer/internal/types"
	"github.com/jonathan/transcript-scorer/internal/validation"
)

//go:embed default_rubric.json
var defaultRubricJSON []byte

// Input is the raw rubric supplied with a scoring request: either an
// already-canonical rubric (used directly, no service call) or opaque raw
// material that must go through the normalizer.
type Input struct {
	Canonical *types.Rubric
	Raw       string
}

// NeedsNormalization reports whether the input must be sent to the
// generative text service before scoring.
func (in Input) NeedsNormalization() bool {
	return in.Canonical == nil
}

// LoadDefault returns the embedded default rubric. The default is
// pre-formatted; a malformed default is a programming error surfaced to the
// caller rather than silently repaired.
func LoadDefault() (*types.Rubric, error) {
	var r types.Rubric
	if err := json.Unmarshal(defaultRubricJSON, &r); err != nil {
		return nil, fmt.Errorf("default rubric is malformed: %w", err)
	}
	if err := validation.ValidateRubric(&r); err != nil {
		return nil, fmt.Errorf("default rubric is malformed: %w", err)
	}
	return &r, nil
}

// ParseUpload converts an uploaded rubric file into an Input. JSON uploads
// already in canonical shape pass through untouched; everything else becomes
// raw text for the normalizer. Spreadsheets are flattened row by row.
func ParseUpload(filename string, data []byte) (Input, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		if rubric, ok := detectCanonical(data); ok {
			return Input{Canonical: rubric}, nil
		}
		return Input{Raw: string(data)}, nil
	case ".xlsx":
		raw, err := flattenWorkbook(data)
		if err != nil {
			return Input{}, fmt.Errorf("failed to parse rubric spreadsheet %s: %w", filename, err)
		}
		return Input{Raw: raw}, nil
	case ".txt", ".csv", ".md":
		return Input{Raw: string(data)}, nil
	default:
		return Input{}, fmt.Errorf("unsupported rubric format: %s", filename)
	}
}

// detectCanonical reports whether the payload already carries a list-typed
// criteria field, and if so returns the decoded rubric.
func detectCanonical(data []byte) (*types.Rubric, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false
	}

	criteria, ok := probe["criteria"]
	if !ok {
		return nil, false
	}
	if trimmed := bytes.TrimSpace(criteria); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var r types.Rubric
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	if len(r.Criteria) == 0 {
		return nil, false
	}
	return &r, true
}

// flattenWorkbook renders the first sheet of an xlsx workbook as
// tab-separated text, one line per row. The flattened dump is normalizer
// input, not a parse of the rubric semantics.
func flattenWorkbook(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sheet %s is empty", sheets[0])
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
