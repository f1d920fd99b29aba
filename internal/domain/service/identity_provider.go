package service

import (
	"context"
	"time"

	"sokoni/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountSession is the result of establishing a login with the identity
// provider: the account record, the opaque session token (handed out exactly
// once) and a signed access token for the HTTP surface.
type AccountSession struct {
	Account      *entity.Account
	SessionToken string
	AccessToken  string
	ExpiresAt    time.Time
}

// IdentityProvider abstracts the remote identity service: account creation,
// session establishment and teardown. Consumed as opaque calls that reject on
// failure and resolve with a typed record on success.
type IdentityProvider interface {
	// CreateAccount registers a new account with an email/password credential.
	CreateAccount(ctx context.Context, email, password, name string) (*entity.Account, error)

	// CreateEmailSession authenticates the credentials and establishes a session.
	CreateEmailSession(ctx context.Context, email, password string) (*AccountSession, error)

	// GetAccount resolves the account behind an existing session token.
	GetAccount(ctx context.Context, sessionToken string) (*entity.Account, error)

	// DeleteSession ends the session identified by the token.
	DeleteSession(ctx context.Context, sessionToken string) error

	// DeleteSessions ends every session of an account.
	DeleteSessions(ctx context.Context, accountID uuid.UUID) error
}
