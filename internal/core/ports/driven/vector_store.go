package driven

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// VectorStore indexes guideline chunks and serves similarity search
// (Chroma). Chunks are stored with their source and category metadata so
// retrieval can be filtered by condition.
type VectorStore interface {
	// Add indexes chunks with their embeddings.
	// embeddings[i] must correspond to chunks[i].
	Add(ctx context.Context, chunks []*domain.GuidelineChunk, embeddings [][]float32) error

	// Query returns the topK most similar chunks to the query embedding,
	// optionally restricted to a category. An empty category means no
	// filter.
	Query(ctx context.Context, embedding []float32, topK int, category domain.Condition) ([]*domain.RetrievedChunk, error)

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)

	// Reset drops and recreates the collection.
	// Used before re-ingestion to avoid duplicate entries.
	Reset(ctx context.Context) error

	// HealthCheck verifies the vector store is reachable.
	HealthCheck(ctx context.Context) error
}
