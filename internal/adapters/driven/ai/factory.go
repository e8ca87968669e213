// Package ai builds AI services from persisted model settings.
package ai

import (
	"github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/ollama"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates Ollama-backed AI services from model settings.
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings
func (f *Factory) CreateEmbeddingService(settings *domain.ModelSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() || settings.EmbedModel == "" {
		return nil, nil
	}
	return ollama.NewEmbedding(settings.BaseURL, settings.EmbedModel)
}

// CreateLLMService creates an LLM service from settings
func (f *Factory) CreateLLMService(settings *domain.ModelSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}
	return ollama.NewLLM(*settings)
}
