package mocks

import (
	"context"
	"sync"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

type storedChunk struct {
	chunk     *domain.GuidelineChunk
	embedding []float32
}

// MockVectorStore is an in-memory VectorStore for testing.
// Query ranks by insertion order, newest last; scores descend from 1.0.
type MockVectorStore struct {
	mu     sync.RWMutex
	chunks []storedChunk

	// Unavailable, when true, makes every call fail with
	// domain.ErrServiceUnavailable
	Unavailable bool
}

// NewMockVectorStore creates a new MockVectorStore
func NewMockVectorStore() *MockVectorStore {
	return &MockVectorStore{}
}

func (m *MockVectorStore) Add(ctx context.Context, chunks []*domain.GuidelineChunk, embeddings [][]float32) error {
	if m.Unavailable {
		return domain.ErrServiceUnavailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, chunk := range chunks {
		var emb []float32
		if i < len(embeddings) {
			emb = embeddings[i]
		}
		m.chunks = append(m.chunks, storedChunk{chunk: chunk, embedding: emb})
	}
	return nil
}

func (m *MockVectorStore) Query(ctx context.Context, embedding []float32, topK int, category domain.Condition) ([]*domain.RetrievedChunk, error) {
	if m.Unavailable {
		return nil, domain.ErrServiceUnavailable
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*domain.RetrievedChunk
	score := 1.0
	for _, sc := range m.chunks {
		if category != "" && sc.chunk.Category != category {
			continue
		}
		results = append(results, &domain.RetrievedChunk{Chunk: sc.chunk, Score: score})
		score -= 0.05
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

func (m *MockVectorStore) Count(ctx context.Context) (int, error) {
	if m.Unavailable {
		return 0, domain.ErrServiceUnavailable
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks), nil
}

func (m *MockVectorStore) Reset(ctx context.Context) error {
	if m.Unavailable {
		return domain.ErrServiceUnavailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = nil
	return nil
}

func (m *MockVectorStore) HealthCheck(ctx context.Context) error {
	if m.Unavailable {
		return domain.ErrServiceUnavailable
	}
	return nil
}
