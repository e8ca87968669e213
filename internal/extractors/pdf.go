package extractors

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*PDFExtractor)(nil)

// PDFExtractor extracts plain text from PDF guideline documents.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract reads the PDF at path and returns its text content.
func (e *PDFExtractor) Extract(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return buf.String(), nil
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *PDFExtractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Name identifies the extractor.
func (e *PDFExtractor) Name() string {
	return "pdf"
}
