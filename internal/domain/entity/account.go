// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the identity provider's own record for a person. It carries only
// the fundamental identity fields; everything role- or marketplace-specific
// lives in the separate profile document (see Profile).
type Account struct {
	ID        uuid.UUID // The unique id for this account.
	Email     string    // The login identifier, unique across accounts.
	Name      string    // Display name registered with the provider.
	Verified  bool      // Whether the email has been verified.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential is a login secret linked to an account. Only email/password
// credentials exist in this slice.
type Credential struct {
	AccountID    uuid.UUID
	PasswordHash string // bcrypt hash of the password.
	CreatedAt    time.Time
}

// Session represents an authorized login with the identity provider.
// The raw session token is handed to the client once; only its SHA-256 hash
// is stored.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Profile is the database-backed profile document for an account: the role
// string plus the extended marketplace attributes. The role is stored raw and
// normalized by the session store on assembly.
type Profile struct {
	AccountID     uuid.UUID
	Role          string // raw stored role string, e.g. "seller"
	SellerProfile *SellerProfile
	SocialProfile SocialProfile
	Preferences   Preferences
	Stats         Stats
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
