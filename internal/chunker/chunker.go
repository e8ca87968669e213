// Package chunker splits guideline text into fixed-size overlapping
// windows sized for embedding.
package chunker

import (
	"fmt"
)

const (
	// DefaultWindow is the chunk size in runes
	DefaultWindow = 1000

	// DefaultOverlap is the number of runes adjacent chunks share
	DefaultOverlap = 200
)

// Chunker produces fixed-size chunks with fixed overlap. Overlap ensures
// no semantic unit is split without duplicated context on both sides.
type Chunker struct {
	window  int
	overlap int
}

// New creates a Chunker. Returns an error if overlap >= window, which
// would make the window never advance.
func New(window, overlap int) (*Chunker, error) {
	if window <= 0 {
		return nil, fmt.Errorf("chunk window must be positive, got %d", window)
	}
	if overlap < 0 || overlap >= window {
		return nil, fmt.Errorf("chunk overlap must be in [0, window), got %d", overlap)
	}
	return &Chunker{window: window, overlap: overlap}, nil
}

// Default returns a Chunker with the standard window and overlap.
func Default() *Chunker {
	c, _ := New(DefaultWindow, DefaultOverlap)
	return c
}

// Window returns the chunk size in runes
func (c *Chunker) Window() int { return c.window }

// Overlap returns the overlap size in runes
func (c *Chunker) Overlap() int { return c.overlap }

// Split cuts text into windows of c.window runes, each adjacent pair
// sharing exactly c.overlap runes. Trailing partial content is always
// emitted; text shorter than one window yields a single chunk. Empty
// text yields nothing.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.window {
		return []string{text}
	}

	step := c.window - c.overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.window
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
