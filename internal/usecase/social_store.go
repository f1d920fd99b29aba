// Package usecase contains the application-specific business rules.
package usecase

import (
	"sokoni/internal/domain/entity"
)

// ActivityInput is the caller-supplied part of an activity entry. The store
// stamps the id and timestamp.
type ActivityInput struct {
	Type     string
	TargetID string
	Message  string
}

// PostInput is the caller-supplied part of a social post.
type PostInput struct {
	AuthorID string
	Content  string
	Images   []string
}

// SocialStore is the client-only social graph and gamification state. It is
// deliberately disconnected: nothing here is ever reconciled with a server.
type SocialStore interface {
	// FollowUser adds id to the following set. Idempotent: following an
	// already-followed user changes nothing and logs nothing.
	FollowUser(id string)

	// UnfollowUser removes id from the following set. Idempotent.
	UnfollowUser(id string)

	IsFollowing(id string) bool
	FollowingCount() int
	FollowersCount() int

	// AddActivity stamps an opaque id and timestamp, prepends the entry and
	// truncates the log to its in-memory cap.
	AddActivity(input ActivityInput) entity.Activity

	// Activities returns the most-recent-first activity log.
	Activities() []entity.Activity

	// CheckAndUnlockAchievements evaluates the rule table for the action and
	// returns only the achievements newly unlocked by this call. Unlocking is
	// one-way and idempotent.
	CheckAndUnlockAchievements(action string, metadata map[string]any) []entity.Achievement

	// Achievements returns the full badge table with unlock timestamps.
	Achievements() []entity.Achievement

	// AddPost creates a local post with optimistic zeroed counters.
	AddPost(input PostInput) entity.SocialPost

	// LikePost / SharePost bump a post's optimistic counters.
	LikePost(postID string)
	SharePost(postID string)

	Posts() []entity.SocialPost

	// TrackLike logs a like activity for a product.
	TrackLike(productID string)

	// TrackShare logs a share activity and re-evaluates share-count
	// achievements with the fresh total.
	TrackShare(productID string)

	// SharesCount returns the number of share activities tracked so far.
	SharesCount() int

	// ClearSocialData resets the store to its initial state. Used on logout.
	ClearSocialData()
}
