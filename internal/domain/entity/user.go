// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the assembled client-facing identity aggregate. It merges the
// identity provider's account record with the profile document and the
// default preference/stat blocks. It is owned exclusively by the session
// store while authenticated and nil otherwise.
type User struct {
	ID            uuid.UUID      // The account id from the identity provider.
	Email         string         // The user's login email.
	Name          string         // The user's display name.
	Role          Role           // Normalized role, always one of buyer/seller/admin.
	Verified      bool           // Whether the identity provider has verified the email.
	SellerProfile *SellerProfile // Nil unless the account carries a seller profile.
	SocialProfile SocialProfile  // Bio/avatar block shown on the public profile.
	Preferences   Preferences    // Notification and privacy preferences.
	Stats         Stats          // Aggregate activity counters.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SellerProfile holds the data specific to the seller role.
type SellerProfile struct {
	StoreName        string
	StoreDescription string
	Verified         bool
	Rating           float64
	SalesCount       int
}

// SocialProfile holds the public-facing profile block.
type SocialProfile struct {
	Bio       string
	AvatarURL string
	Website   string
}

// Preferences groups the notification and privacy preference blocks.
type Preferences struct {
	Notifications NotificationPreferences
	Privacy       PrivacyPreferences
}

// NotificationPreferences controls which notification channels are enabled.
type NotificationPreferences struct {
	Email        bool
	OrderUpdates bool
	NewFollowers bool
	Promotions   bool
}

// PrivacyPreferences controls what the public profile exposes.
type PrivacyPreferences struct {
	PublicProfile bool
	ShowEmail     bool
	ShowActivity  bool
}

// Stats holds aggregate counters maintained for the user.
type Stats struct {
	Orders     int
	TotalSpend int64 // minor currency units
	Reviews    int
	Followers  int
}

// DefaultPreferences returns the preference block seeded for new profiles.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: NotificationPreferences{
			Email:        true,
			OrderUpdates: true,
			NewFollowers: true,
		},
		Privacy: PrivacyPreferences{
			PublicProfile: true,
			ShowActivity:  true,
		},
	}
}
