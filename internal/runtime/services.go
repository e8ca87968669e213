// Package runtime holds services that can be swapped while the process is
// running.
package runtime

import (
	"context"
	"sync"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Services holds references to dynamically configurable AI services.
// Embedding and LLM services are rebuilt whenever model settings change.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	config *domain.RuntimeConfig

	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// LLMService returns the current LLM service (may be nil)
func (s *Services) LLMService() driven.LLMService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmService
}

// SetEmbeddingService updates the embedding service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}

	s.embeddingService = svc
	s.config.SetEmbeddingAvailable(svc != nil)
}

// SetLLMService updates the LLM service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetLLMService(svc driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.llmService != nil {
		_ = s.llmService.Close()
	}

	s.llmService = svc
	s.config.SetLLMAvailable(svc != nil)
}

// ValidateAndSetEmbedding verifies connectivity before swapping in the
// embedding service. A nil service clears the slot.
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}

	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetEmbeddingService(svc)
	return nil
}

// ValidateAndSetLLM verifies connectivity before swapping in the LLM
// service. A nil service clears the slot.
func (s *Services) ValidateAndSetLLM(ctx context.Context, svc driven.LLMService) error {
	if svc == nil {
		s.SetLLMService(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetLLMService(svc)
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.llmService != nil {
		_ = s.llmService.Close()
		s.llmService = nil
	}

	s.config.SetEmbeddingAvailable(false)
	s.config.SetLLMAvailable(false)

	return nil
}
