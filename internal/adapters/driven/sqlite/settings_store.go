package sqlite

import (
	"context"
	"database/sql"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements driven.SettingsStore using embedded sqlite.
// Model settings live in a single fixed row.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// GetModelSettings retrieves the stored settings
func (s *SettingsStore) GetModelSettings(ctx context.Context) (*domain.ModelSettings, error) {
	query := `
		SELECT base_url, model, embed_model, temperature, top_p, top_k, num_predict, repeat_penalty, keep_alive, updated_at
		FROM model_settings
		WHERE id = 1
	`

	var settings domain.ModelSettings
	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.BaseURL,
		&settings.Model,
		&settings.EmbedModel,
		&settings.Temperature,
		&settings.TopP,
		&settings.TopK,
		&settings.NumPredict,
		&settings.RepeatPenalty,
		&settings.KeepAlive,
		&settings.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveModelSettings creates or replaces the stored settings
func (s *SettingsStore) SaveModelSettings(ctx context.Context, settings *domain.ModelSettings) error {
	query := `
		INSERT INTO model_settings (id, base_url, model, embed_model, temperature, top_p, top_k, num_predict, repeat_penalty, keep_alive, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			base_url = excluded.base_url,
			model = excluded.model,
			embed_model = excluded.embed_model,
			temperature = excluded.temperature,
			top_p = excluded.top_p,
			top_k = excluded.top_k,
			num_predict = excluded.num_predict,
			repeat_penalty = excluded.repeat_penalty,
			keep_alive = excluded.keep_alive,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		settings.BaseURL,
		settings.Model,
		settings.EmbedModel,
		settings.Temperature,
		settings.TopP,
		settings.TopK,
		settings.NumPredict,
		settings.RepeatPenalty,
		settings.KeepAlive,
		settings.UpdatedAt,
	)
	return err
}
