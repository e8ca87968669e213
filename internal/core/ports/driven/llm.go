package driven

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// LLMService generates text from a fully assembled prompt (Ollama).
type LLMService interface {
	// Generate returns the complete response for a prompt.
	// Returns domain.ErrServiceUnavailable if the model cannot be reached.
	Generate(ctx context.Context, prompt string) (string, error)

	// Stream yields response increments in arrival order. The channel is
	// closed after the final delta (Done set) or on error (Err set on the
	// last delta). Cancelling the context aborts the generation upstream;
	// a finished stream cannot be restarted.
	Stream(ctx context.Context, prompt string) (<-chan domain.StreamDelta, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the LLM service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}
