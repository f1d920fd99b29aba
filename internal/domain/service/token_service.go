package service

import (
	"time"

	"sokoni/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims carries the validated contents of an access token.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenService abstracts access-token issuance and the hashing of opaque
// session tokens for at-rest storage.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for an account.
	GenerateAccessToken(accountID uuid.UUID, role entity.Role) (string, error)

	// ValidateAccessToken checks a token string and returns its claims.
	ValidateAccessToken(token string) (*TokenClaims, error)

	// NewSessionToken generates a fresh opaque session token.
	NewSessionToken() string

	// HashToken returns the SHA-256 hex digest used to store session tokens.
	HashToken(token string) string

	// SessionTTL returns the configured lifetime of a session.
	SessionTTL() time.Duration
}
