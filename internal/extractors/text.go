package extractors

import (
	"fmt"
	"os"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*TextExtractor)(nil)

// TextExtractor handles plain-text guideline files.
type TextExtractor struct{}

// NewTextExtractor creates a plain-text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reads the file at path verbatim.
func (e *TextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *TextExtractor) SupportedExtensions() []string {
	return []string{".txt", ".md"}
}

// Name identifies the extractor.
func (e *TextExtractor) Name() string {
	return "text"
}
