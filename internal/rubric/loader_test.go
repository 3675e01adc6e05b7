package rubric

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadDefault(t *testing.T) {
	rubric, err := LoadDefault()
	require.NoError(t, err)

	require.Len(t, rubric.Criteria, 3)
	assert.Equal(t, "Content & Structure", rubric.Criteria[0].Name)

	// Criterion weights cover the full 100-point scale
	total := 0.0
	for _, c := range rubric.Criteria {
		total += c.TotalWeight
	}
	assert.Equal(t, 100.0, total)
}

func TestParseUpload_CanonicalJSON(t *testing.T) {
	data := []byte(`{"criteria": [{"name": "Delivery", "total_weight": 100, "metrics": []}]}`)

	input, err := ParseUpload("rubric.json", data)
	require.NoError(t, err)

	assert.False(t, input.NeedsNormalization())
	require.NotNil(t, input.Canonical)
	assert.Equal(t, "Delivery", input.Canonical.Criteria[0].Name)
}

func TestParseUpload_NonCanonicalJSON(t *testing.T) {
	data := []byte(`{"sections": [{"title": "Delivery", "points": 100}]}`)

	input, err := ParseUpload("rubric.json", data)
	require.NoError(t, err)

	assert.True(t, input.NeedsNormalization())
	assert.Contains(t, input.Raw, "Delivery")
}

func TestParseUpload_CriteriaNotAList(t *testing.T) {
	data := []byte(`{"criteria": {"name": "Delivery"}}`)

	input, err := ParseUpload("rubric.json", data)
	require.NoError(t, err)
	assert.True(t, input.NeedsNormalization())
}

func TestParseUpload_PlainText(t *testing.T) {
	input, err := ParseUpload("rubric.txt", []byte("Delivery: 50 points\nLanguage: 50 points"))
	require.NoError(t, err)
	assert.True(t, input.NeedsNormalization())
	assert.Contains(t, input.Raw, "Delivery: 50 points")
}

func TestParseUpload_Spreadsheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Criterion"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Weight"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Delivery"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 50))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	input, err := ParseUpload("rubric.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.True(t, input.NeedsNormalization())
	assert.Contains(t, input.Raw, "Criterion\tWeight")
	assert.Contains(t, input.Raw, "Delivery\t50")
}

func TestParseUpload_UnsupportedFormat(t *testing.T) {
	_, err := ParseUpload("rubric.docx", []byte("whatever"))
	assert.Error(t, err)
}

func TestParseUpload_MalformedSpreadsheet(t *testing.T) {
	_, err := ParseUpload("rubric.xlsx", []byte("not a zip archive"))
	assert.Error(t, err)
}
