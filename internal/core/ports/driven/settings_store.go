package driven

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// SettingsStore persists model settings so runtime reconfiguration
// survives restarts.
type SettingsStore interface {
	// GetModelSettings retrieves the stored settings.
	// Returns domain.ErrNotFound if none have been saved yet.
	GetModelSettings(ctx context.Context) (*domain.ModelSettings, error)

	// SaveModelSettings creates or replaces the stored settings
	SaveModelSettings(ctx context.Context, settings *domain.ModelSettings) error
}
