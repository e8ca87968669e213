package driven

import (
	"context"
)

// EmbeddingService generates text embeddings. The same service is used at
// index time and query time; retrieval only works if both sides share the
// embedding space.
type EmbeddingService interface {
	// Embed generates embeddings for multiple texts
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a retrieval query
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// Model returns the model name being used
	Model() string

	// HealthCheck verifies the embedding service is available
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the embedding service
	Close() error
}
