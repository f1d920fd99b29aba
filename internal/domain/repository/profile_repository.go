// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"sokoni/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when no profile document exists for an account.
// An authenticated account without a profile document is a data-integrity
// failure, not a normal "wrong password" case; the session store maps this
// onto its own error taxonomy.
var ErrProfileNotFound = errors.New("profile document not found")

// ProfileRepository defines the standard operations for profile document persistence.
type ProfileRepository interface {
	// Create persists a new profile document for an account.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByAccountID retrieves the profile document for an account id.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error)

	// Update modifies an existing profile document.
	Update(ctx context.Context, profile *entity.Profile) error
}
