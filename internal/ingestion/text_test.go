package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Hello everyone\r\nmy name is Alex\rthank you"
	result := CleanText(input)

	assert.NotContains(t, result, "\r")
	assert.Contains(t, result, "Hello everyone\nmy name is Alex\nthank you")
}

func TestCleanText_CollapseSpaces(t *testing.T) {
	input := "Hello    everyone   my  name\tis Alex"
	result := CleanText(input)

	assert.Equal(t, "Hello everyone my name is Alex", result)
}

func TestCleanText_StripControlCharacters(t *testing.T) {
	input := "Hello\x00 every\x08one\x1b thank you"
	result := CleanText(input)

	assert.Equal(t, "Hello everyone thank you", result)
}

func TestCleanText_CollapseBlankLines(t *testing.T) {
	input := "First part\n\n\n\n\nSecond part"
	result := CleanText(input)

	assert.Equal(t, "First part\n\nSecond part", result)
}

func TestCleanText_TrimsEnds(t *testing.T) {
	assert.Equal(t, "middle", CleanText("\n\n  middle  \n\n"))
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("  \n \t "))
}

func TestExtractTranscript_PlainText(t *testing.T) {
	text, err := ExtractTranscript("talk.txt", []byte("Hello  everyone\r\nthank you"))
	require.NoError(t, err)
	assert.Equal(t, "Hello everyone\nthank you", text)
}

func TestExtractTranscript_Markdown(t *testing.T) {
	text, err := ExtractTranscript("talk.md", []byte("Hello everyone"))
	require.NoError(t, err)
	assert.Equal(t, "Hello everyone", text)
}

func TestExtractTranscript_CaseInsensitiveExtension(t *testing.T) {
	text, err := ExtractTranscript("TALK.TXT", []byte("Hello"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestExtractTranscript_UnsupportedFormat(t *testing.T) {
	_, err := ExtractTranscript("talk.docx", []byte("whatever"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transcript format")
}

func TestExtractTranscript_MalformedPDF(t *testing.T) {
	_, err := ExtractTranscript("talk.pdf", []byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestExtractFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello everyone thank you"), 0o644))

	text, err := ExtractFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello everyone thank you", text)
}

func TestExtractFromFile_Missing(t *testing.T) {
	_, err := ExtractFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
