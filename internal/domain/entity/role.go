// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the type of role an account can have in the marketplace.
type Role string

const (
	// RoleBuyer indicates a regular buyer role.
	RoleBuyer Role = "buyer"
	// RoleSeller indicates an artisan seller role.
	RoleSeller Role = "seller"
	// RoleAdmin indicates a marketplace administrator role.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// NormalizeRole maps a raw stored role string onto a valid Role.
// Matching is case-insensitive; any unrecognized or empty value falls back to
// RoleBuyer. The silent fallback is the documented contract of the profile
// document schema; callers that care about the downgrade are expected to log it.
func NormalizeRole(raw string) Role {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if role.IsValid() {
		return role
	}

	return RoleBuyer
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
