package mocks

import (
	"context"
	"sync"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// MockEmbeddingService returns deterministic embeddings for testing
type MockEmbeddingService struct {
	mu sync.Mutex

	// Unavailable, when true, makes every call fail with
	// domain.ErrServiceUnavailable
	Unavailable bool

	// Dim is the embedding dimension (default 4)
	Dim int

	// Queries records every EmbedQuery input
	Queries []string
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{Dim: 4}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Unavailable {
		return nil, domain.ErrServiceUnavailable
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vector(text)
	}
	return out, nil
}

func (m *MockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if m.Unavailable {
		return nil, domain.ErrServiceUnavailable
	}
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	return m.vector(query), nil
}

// vector derives a stable pseudo-embedding from the text bytes
func (m *MockEmbeddingService) vector(text string) []float32 {
	dim := m.Dim
	if dim <= 0 {
		dim = 4
	}
	v := make([]float32, dim)
	for i, b := range []byte(text) {
		v[i%dim] += float32(b) / 255
	}
	return v
}

func (m *MockEmbeddingService) Model() string                       { return "mock-embed" }
func (m *MockEmbeddingService) HealthCheck(ctx context.Context) error {
	if m.Unavailable {
		return domain.ErrServiceUnavailable
	}
	return nil
}
func (m *MockEmbeddingService) Close() error { return nil }

// MockLLMService returns canned answers for testing
type MockLLMService struct {
	mu sync.Mutex

	// Unavailable, when true, makes every call fail with
	// domain.ErrServiceUnavailable
	Unavailable bool

	// Answer is returned from Generate; StreamParts are yielded from
	// Stream (falling back to Answer as a single delta when empty)
	Answer      string
	StreamParts []string

	// Prompts records every prompt received
	Prompts []string
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService(answer string) *MockLLMService {
	return &MockLLMService{Answer: answer}
}

func (m *MockLLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Unavailable {
		return "", domain.ErrServiceUnavailable
	}
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	return m.Answer, nil
}

func (m *MockLLMService) Stream(ctx context.Context, prompt string) (<-chan domain.StreamDelta, error) {
	if m.Unavailable {
		return nil, domain.ErrServiceUnavailable
	}
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	parts := m.StreamParts
	m.mu.Unlock()

	if len(parts) == 0 {
		parts = []string{m.Answer}
	}

	ch := make(chan domain.StreamDelta)
	go func() {
		defer close(ch)
		for i, part := range parts {
			delta := domain.StreamDelta{Text: part, Done: i == len(parts)-1}
			select {
			case ch <- delta:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (m *MockLLMService) Model() string { return "mock-llm" }
func (m *MockLLMService) Ping(ctx context.Context) error {
	if m.Unavailable {
		return domain.ErrServiceUnavailable
	}
	return nil
}
func (m *MockLLMService) Close() error { return nil }
