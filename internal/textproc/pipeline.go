// Package textproc cleans extracted guideline text before chunking.
// PDF extraction leaves hyphenated line breaks and ragged whitespace that
// degrade both embedding quality and retrieval snippets.
package textproc

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TextPipeline = (*Pipeline)(nil)

// Stage is one text transformation applied by the pipeline.
type Stage interface {
	// Name identifies the stage
	Name() string

	// Order determines stage position; lower runs first
	Order() int

	// Apply transforms the text
	Apply(text string) string
}

// Pipeline chains stages in order.
type Pipeline struct {
	mu     sync.RWMutex
	stages []Stage
	sorted bool
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// DefaultPipeline creates a pipeline with the standard stages.
func DefaultPipeline() *Pipeline {
	p := NewPipeline()
	p.Add(Dehyphenate{})
	p.Add(CollapseWhitespace{})
	return p
}

// Add adds a stage. Stages are sorted by Order before processing.
func (p *Pipeline) Add(stage Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stages = append(p.stages, stage)
	p.sorted = false
}

// Process applies all stages in order.
func (p *Pipeline) Process(text string) string {
	p.mu.Lock()
	if !p.sorted {
		sort.Slice(p.stages, func(i, j int) bool {
			return p.stages[i].Order() < p.stages[j].Order()
		})
		p.sorted = true
	}
	stages := make([]Stage, len(p.stages))
	copy(stages, p.stages)
	p.mu.Unlock()

	for _, stage := range stages {
		text = stage.Apply(text)
	}
	return text
}

// List returns stage names in order.
func (p *Pipeline) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}
	return names
}

var hyphenBreak = regexp.MustCompile(`(\p{L})-\r?\n(\p{L})`)

// Dehyphenate rejoins words split across PDF line breaks
// ("carbo-\nhydrate" becomes "carbohydrate").
type Dehyphenate struct{}

func (Dehyphenate) Name() string { return "dehyphenate" }
func (Dehyphenate) Order() int   { return 10 }

func (Dehyphenate) Apply(text string) string {
	return hyphenBreak.ReplaceAllString(text, "$1$2")
}

var (
	multiBlank = regexp.MustCompile(`\n{3,}`)
	lineSpace  = regexp.MustCompile(`[ \t]+`)
)

// CollapseWhitespace normalizes runs of spaces and blank lines while
// preserving paragraph breaks.
type CollapseWhitespace struct{}

func (CollapseWhitespace) Name() string { return "collapse_whitespace" }
func (CollapseWhitespace) Order() int   { return 20 }

func (CollapseWhitespace) Apply(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = lineSpace.ReplaceAllString(text, " ")
	text = multiBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
