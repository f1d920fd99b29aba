// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"sokoni/config"
	"sokoni/internal/domain/service"

	"github.com/pkg/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	strength := cfg.PasswordStrength
	if strength == nil {
		strength = &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72}
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength enforces the configured password requirements.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.strength.MinLength {
		return errors.Errorf("password must be at least %d characters", h.strength.MinLength)
	}
	// bcrypt truncates input beyond 72 bytes, refuse instead of silently truncating.
	maxLength := h.strength.MaxLength
	if maxLength <= 0 || maxLength > 72 {
		maxLength = 72
	}
	if len(password) > maxLength {
		return errors.Errorf("password must be at most %d characters", maxLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	if h.strength.RequireUppercase && !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if h.strength.RequireLowercase && !hasLower {
		return errors.New("password must contain a lowercase letter")
	}
	if h.strength.RequireNumbers && !hasNumber {
		return errors.New("password must contain a number")
	}

	return nil
}
