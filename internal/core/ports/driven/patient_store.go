package driven

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// PatientStore persists patient profiles, keyed by unique name.
// Implementations can use Postgres or embedded sqlite.
type PatientStore interface {
	// Create inserts a new profile and returns its generated ID.
	// Returns domain.ErrAlreadyExists if the name is taken.
	Create(ctx context.Context, profile *domain.Profile) (int64, error)

	// GetByName retrieves a profile by name.
	// Returns domain.ErrNotFound if absent.
	GetByName(ctx context.Context, name string) (*domain.Profile, error)

	// Delete removes a profile by name.
	// Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, name string) error

	// List retrieves all profiles, newest first.
	List(ctx context.Context) ([]*domain.Profile, error)

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error
}
