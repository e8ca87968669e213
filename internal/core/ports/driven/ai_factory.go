package driven

import (
	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// AIServiceFactory creates AI services from model settings.
// Used at startup and again whenever settings change at runtime.
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service.
	// Returns nil, nil if the settings are not configured.
	CreateEmbeddingService(settings *domain.ModelSettings) (EmbeddingService, error)

	// CreateLLMService creates an LLM service.
	// Returns nil, nil if the settings are not configured.
	CreateLLMService(settings *domain.ModelSettings) (LLMService, error)
}
