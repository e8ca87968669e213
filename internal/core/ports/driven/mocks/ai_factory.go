package mocks

import (
	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// MockAIFactory builds mock AI services, recording the settings it saw
type MockAIFactory struct {
	// EmbeddingErr / LLMErr, when set, fail the corresponding build
	EmbeddingErr error
	LLMErr       error

	// Unavailable marks built services as unreachable so validation fails
	Unavailable bool

	// LastSettings records the settings from the most recent build
	LastSettings *domain.ModelSettings
}

// NewMockAIFactory creates a new MockAIFactory
func NewMockAIFactory() *MockAIFactory {
	return &MockAIFactory{}
}

func (m *MockAIFactory) CreateEmbeddingService(settings *domain.ModelSettings) (driven.EmbeddingService, error) {
	if m.EmbeddingErr != nil {
		return nil, m.EmbeddingErr
	}
	if !settings.IsConfigured() {
		return nil, nil
	}
	m.LastSettings = settings
	svc := NewMockEmbeddingService()
	svc.Unavailable = m.Unavailable
	return svc, nil
}

func (m *MockAIFactory) CreateLLMService(settings *domain.ModelSettings) (driven.LLMService, error) {
	if m.LLMErr != nil {
		return nil, m.LLMErr
	}
	if !settings.IsConfigured() {
		return nil, nil
	}
	m.LastSettings = settings
	svc := NewMockLLMService("ok")
	svc.Unavailable = m.Unavailable
	return svc, nil
}
