package driven

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// SessionStore persists patient sessions.
// Implementations can use Redis (TTL-based expiry) or sqlite.
type SessionStore interface {
	// Save stores a session
	Save(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID.
	// Returns domain.ErrNotFound if absent or expired.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// GetByToken retrieves a session by access token
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// GetByRefreshToken retrieves a session by refresh token
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)

	// Delete removes a session by ID
	Delete(ctx context.Context, id string) error

	// DeleteByPatient removes all sessions for a patient
	DeleteByPatient(ctx context.Context, patientName string) error
}
