// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"sokoni/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for identity persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrCredentialNotFound is returned when no credential exists for an account.
	ErrCredentialNotFound = errors.New("credential not found")
)

// AccountRepository defines the standard operations for identity account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// Create persists a new account together with its email/password credential.
	Create(ctx context.Context, account *entity.Account, credential *entity.Credential) error

	// FindByID retrieves a single account by its unique id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindCredentialByEmail retrieves the login credential for an email address.
	FindCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error)
}
