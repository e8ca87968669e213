package driving

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// SettingsService manages model settings and rebuilds AI services when
// they change
type SettingsService interface {
	// GetModelSettings returns the active settings
	GetModelSettings(ctx context.Context) (*domain.ModelSettings, error)

	// UpdateModelSettings persists new settings and swaps in freshly
	// built AI services after a connectivity check.
	UpdateModelSettings(ctx context.Context, settings domain.ModelSettings) (*domain.ModelSettings, error)

	// Bootstrap loads persisted settings (or seeds the defaults) and
	// builds the initial AI services. Unreachable services leave their
	// capability flags off rather than failing startup.
	Bootstrap(ctx context.Context, seed domain.ModelSettings) error
}
