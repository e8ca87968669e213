package driven

// Extractor converts a document file into plain text.
// The extraction library itself is treated as a black box behind this
// port.
type Extractor interface {
	// Extract reads the file at path and returns its text content
	Extract(path string) (string, error)

	// SupportedExtensions returns the lowercase file extensions this
	// extractor handles (including the dot, e.g. ".pdf")
	SupportedExtensions() []string

	// Name identifies the extractor in logs and ingest reports
	Name() string
}

// ExtractorRegistry resolves the extractor for a document by file
// extension.
type ExtractorRegistry interface {
	// Register adds an extractor
	Register(extractor Extractor)

	// Get returns the extractor for a filename, or nil if none matches
	Get(filename string) Extractor

	// Extensions returns all registered extensions, sorted
	Extensions() []string
}

// TextPipeline cleans extracted text before chunking (PDF dehyphenation,
// whitespace normalization).
type TextPipeline interface {
	// Process applies all cleanup stages in order
	Process(text string) string

	// List returns stage names in order
	List() []string
}
