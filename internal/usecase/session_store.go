// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"sokoni/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string // raw requested role, normalized on assembly
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ProfilePatch is a partial update of the in-memory user. Nil fields are left
// untouched; set fields are shallow-merged.
type ProfilePatch struct {
	Name             *string
	Bio              *string
	AvatarURL        *string
	Website          *string
	StoreName        *string
	StoreDescription *string
	Preferences      *entity.Preferences
}

// --- Output DTOs ---

// LogoutResult reports how a logout ended. Local state is always cleared;
// only the fate of the remote session varies.
type LogoutResult struct {
	// RemoteSessionEnded is true when the identity provider acknowledged the
	// session deletion. False means the remote state is unknown: the session
	// may still exist until it expires server-side.
	RemoteSessionEnded bool
}

// SessionStore is the single source of truth for "who is logged in". It
// mediates every conversation with the identity provider and owns the
// authenticated user aggregate.
type SessionStore interface {
	// Login ends any existing session best-effort, establishes a new one and
	// assembles the full user aggregate. Two concurrent Logins race; the later
	// resolution wins.
	Login(ctx context.Context, input LoginInput) (*entity.User, error)

	// Register creates the account, an immediate session and the profile
	// document seeded with the requested role.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// Logout clears local state unconditionally and deletes the remote
	// session best-effort. It never fails.
	Logout(ctx context.Context) LogoutResult

	// CheckAuth rehydrates the user from an existing remote session. Any
	// failure clears local state; the outcome is always determinate.
	CheckAuth(ctx context.Context) (*entity.User, bool)

	// UpdateProfile shallow-merges the patch into the in-memory user. The
	// change is local-only: nothing is written back to the profile document.
	UpdateProfile(patch ProfilePatch) (*entity.User, error)

	// CurrentUser returns the authenticated user, if any.
	CurrentUser() (*entity.User, bool)

	// IsAuthenticated reports whether a user is currently logged in.
	IsAuthenticated() bool

	// AccessToken returns the bearer token of the current session, if any.
	AccessToken() (string, bool)
}
