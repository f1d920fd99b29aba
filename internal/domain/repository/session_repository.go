// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"sokoni/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session is not found or already deleted.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the standard operations for identity session persistence.
type SessionRepository interface {
	// Create persists a new session, representing an authorized login.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a session record by its securely stored hash.
	FindByTokenHash(ctx context.Context, hash string) (*entity.Session, error)

	// DeleteByTokenHash deletes a session by its hash, effectively ending the login.
	DeleteByTokenHash(ctx context.Context, hash string) error

	// DeleteByAccountID deletes every session of an account.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error

	// DeleteExpired removes all sessions past their expiry and returns the count.
	DeleteExpired(ctx context.Context) (int64, error)
}
