package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractTranscript converts an uploaded transcript file into cleaned plain
// text. PDF uploads are text-extracted; .txt and .md are read as-is. Other
// extensions are rejected rather than guessed at.
func ExtractTranscript(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return CleanText(string(data)), nil
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", filename, err)
		}
		return CleanText(text), nil
	default:
		return "", fmt.Errorf("unsupported transcript format %q (want .txt, .md, or .pdf)", filepath.Ext(filename))
	}
}

// ExtractFromFile reads a transcript file from disk and extracts its text.
func ExtractFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("transcript file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read transcript file: %w", err)
	}
	return ExtractTranscript(path, data)
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", fmt.Errorf("document contains no extractable text")
	}
	return buf.String(), nil
}
