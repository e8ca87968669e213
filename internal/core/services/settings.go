package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
	"github.com/nutrimed-labs/nutrimed-core/internal/runtime"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsStore driven.SettingsStore
	aiFactory     driven.AIServiceFactory
	services      *runtime.Services
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsStore driven.SettingsStore,
	aiFactory driven.AIServiceFactory,
	services *runtime.Services,
) driving.SettingsService {
	return &settingsService{
		settingsStore: settingsStore,
		aiFactory:     aiFactory,
		services:      services,
	}
}

// GetModelSettings returns the active settings
func (s *settingsService) GetModelSettings(ctx context.Context) (*domain.ModelSettings, error) {
	return s.settingsStore.GetModelSettings(ctx)
}

// UpdateModelSettings persists new settings and hot-reloads the AI
// services behind a connectivity check. The persisted settings are the
// source of truth even when a service fails its check; the capability
// flag stays off until the endpoint becomes reachable.
func (s *settingsService) UpdateModelSettings(ctx context.Context, settings domain.ModelSettings) (*domain.ModelSettings, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: base_url and model are required", domain.ErrInvalidInput)
	}

	settings.UpdatedAt = time.Now()

	if err := s.settingsStore.SaveModelSettings(ctx, &settings); err != nil {
		return nil, err
	}

	s.reload(ctx, &settings)

	return &settings, nil
}

// Bootstrap loads persisted settings (or seeds the defaults) and builds
// the initial AI services
func (s *settingsService) Bootstrap(ctx context.Context, seed domain.ModelSettings) error {
	settings, err := s.settingsStore.GetModelSettings(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		seed.UpdatedAt = time.Now()
		if err := s.settingsStore.SaveModelSettings(ctx, &seed); err != nil {
			return err
		}
		settings = &seed
	} else if err != nil {
		return err
	}

	s.reload(ctx, settings)
	return nil
}

// reload swaps in freshly built AI services. Build or connectivity
// failures leave the corresponding slot empty rather than propagating; the
// repo runs degraded until the endpoint comes back.
func (s *settingsService) reload(ctx context.Context, settings *domain.ModelSettings) {
	embSvc, err := s.aiFactory.CreateEmbeddingService(settings)
	if err != nil {
		s.services.SetEmbeddingService(nil)
	} else if err := s.services.ValidateAndSetEmbedding(ctx, embSvc); err != nil {
		s.services.SetEmbeddingService(nil)
	}

	llmSvc, err := s.aiFactory.CreateLLMService(settings)
	if err != nil {
		s.services.SetLLMService(nil)
	} else if err := s.services.ValidateAndSetLLM(ctx, llmSvc); err != nil {
		s.services.SetLLMService(nil)
	}
}
