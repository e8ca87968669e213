// Package extractors converts guideline documents to plain text.
// Extractors are looked up by file extension, so new document formats can
// be added without touching the ingest pipeline.
package extractors

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry implements ExtractorRegistry with extension-based selection.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.Extractor),
	}
}

// DefaultRegistry creates a registry with the standard extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPDFExtractor())
	r.Register(NewTextExtractor())
	return r
}

// Register adds an extractor for each of its supported extensions.
// A later registration for the same extension wins.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.SupportedExtensions() {
		r.extractors[strings.ToLower(ext)] = extractor
	}
}

// Get returns the extractor for a filename, or nil if none matches.
func (r *Registry) Get(filename string) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(filename))
	return r.extractors[ext]
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
