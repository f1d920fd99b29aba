// Package entity contains the core business objects of the project.
package entity

import "time"

// Limits for the bounded activity log.
const (
	// MaxActivitiesInMemory caps the most-recent-first activity sequence.
	MaxActivitiesInMemory = 100
	// MaxActivitiesPersisted caps the slice written to the snapshot store.
	MaxActivitiesPersisted = 50
)

// Activity is one entry of the bounded, most-recent-first engagement log.
// IDs are opaque (snowflake) and stamped by the social store.
type Activity struct {
	ID        string
	Type      string // follow, like, share, post, purchase, achievement
	TargetID  string // id of the followed user, liked product, unlocked achievement, ...
	Message   string
	CreatedAt time.Time
}

// SocialPost is a locally-held social post. Counters are optimistic and never
// reconciled against a server.
type SocialPost struct {
	ID        string
	AuthorID  string
	Content   string
	Images    []string
	Likes     int
	Shares    int
	CreatedAt time.Time
}

// Achievement is an unlockable gamification badge. Unlocking is one-way:
// UnlockedAt is nil while locked and set exactly once.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	UnlockedAt  *time.Time
}
