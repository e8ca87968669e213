package driving

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// AuthService manages patient login sessions
type AuthService interface {
	// Login authenticates a patient by name and optional PIN.
	// Returns domain.ErrNotFound for unregistered names and
	// domain.ErrInvalidCredentials for a wrong PIN.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// RefreshToken exchanges a refresh token for a new access token
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)

	// ValidateToken verifies an access token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Logout invalidates the session behind a token
	Logout(ctx context.Context, token string) error
}
