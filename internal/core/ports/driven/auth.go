package driven

import (
	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// AuthAdapter handles PIN hashing and token operations
type AuthAdapter interface {
	// HashPIN generates a hash from a plaintext access PIN
	HashPIN(pin string) (string, error)

	// VerifyPIN checks if a PIN matches a hash
	VerifyPIN(pin, hash string) bool

	// GenerateToken creates a signed token from claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a token and extracts claims
	ParseToken(token string) (*domain.TokenClaims, error)
}
