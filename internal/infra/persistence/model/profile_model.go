package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table: the marketplace profile document
// keyed by account. The role is stored as the raw string it was written with;
// normalization happens in the application layer.
type ProfileModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(32);not null;default:'buyer'"`

	// Seller block, null for plain buyers.
	StoreName        *string  `gorm:"type:varchar(100)"`
	StoreDescription *string  `gorm:"type:text"`
	SellerVerified   *bool    `gorm:""`
	SellerRating     *float64 `gorm:""`
	SalesCount       *int     `gorm:""`

	// Public-facing social block.
	Bio       string `gorm:"type:text"`
	AvatarURL string `gorm:"type:varchar(512)"`
	Website   string `gorm:"type:varchar(512)"`

	// Preference and stats documents, stored as jsonb.
	Preferences PreferencesDoc `gorm:"type:jsonb;serializer:json"`
	Stats       StatsDoc       `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// PreferencesDoc is the jsonb shape of the preferences column.
type PreferencesDoc struct {
	Notifications NotificationPreferencesDoc `json:"notifications"`
	Privacy       PrivacyPreferencesDoc      `json:"privacy"`
}

// NotificationPreferencesDoc is the jsonb shape of the notification block.
type NotificationPreferencesDoc struct {
	Email        bool `json:"email"`
	OrderUpdates bool `json:"orderUpdates"`
	NewFollowers bool `json:"newFollowers"`
	Promotions   bool `json:"promotions"`
}

// PrivacyPreferencesDoc is the jsonb shape of the privacy block.
type PrivacyPreferencesDoc struct {
	PublicProfile bool `json:"publicProfile"`
	ShowEmail     bool `json:"showEmail"`
	ShowActivity  bool `json:"showActivity"`
}

// StatsDoc is the jsonb shape of the stats column.
type StatsDoc struct {
	Orders     int   `json:"orders"`
	TotalSpend int64 `json:"totalSpend"`
	Reviews    int   `json:"reviews"`
	Followers  int   `json:"followers"`
}
