// Package impl contains the implementation of the application's business logic.
package impl

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"sokoni/internal/domain/entity"
	"sokoni/internal/errors"
	"sokoni/internal/infra/localstore"
	"sokoni/internal/usecase"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

const (
	socialSnapshotNamespace = "social"
	socialSnapshotKey       = "current"
)

// socialSnapshot is the persisted slice of social state. Posts and
// suggestions are deliberately not persisted.
type socialSnapshot struct {
	Following            []string             `json:"following"`
	Followers            []string             `json:"followers"`
	Activities           []entity.Activity    `json:"activities"`
	UnlockedAchievements map[string]time.Time `json:"unlockedAchievements"`
	ShareCount           int                  `json:"shareCount"`
}

// socialStore implements the SocialStore interface. Client-only state: it has
// no repository or network dependency by construction, so nothing here can
// reconcile against a server.
type socialStore struct {
	mu sync.Mutex

	following  []string
	followers  []string
	activities []entity.Activity
	posts      []entity.SocialPost
	unlocked   map[string]time.Time
	shareCount int

	node      *snowflake.Node
	snapshots localstore.SnapshotStore
	logger    *slog.Logger
}

// SocialStoreParams holds dependencies for the social store, injected by Fx.
type SocialStoreParams struct {
	fx.In

	Node      *snowflake.Node
	Snapshots localstore.SnapshotStore
	Logger    *slog.Logger
}

// NewSocialStore is the constructor for socialStore. Followed ids, the
// truncated activity slice and the unlocked-achievement set are rehydrated
// from the snapshot store.
func NewSocialStore(params SocialStoreParams) usecase.SocialStore {
	store := &socialStore{
		unlocked:  make(map[string]time.Time),
		node:      params.Node,
		snapshots: params.Snapshots,
		logger:    params.Logger,
	}
	store.rehydrate()

	return store
}

// FollowUser adds id to the following set. Idempotent: an already-followed id
// changes nothing, logs no activity and triggers no evaluation.
func (store *socialStore) FollowUser(id string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if slices.Contains(store.following, id) {
		return
	}

	store.following = append(store.following, id)
	store.addActivityLocked(entity.Activity{
		Type:     "follow",
		TargetID: id,
		Message:  "started following an artisan",
	})
	store.unlockLocked("follow", map[string]any{"followingCount": len(store.following)})
	store.persistLocked()
}

// UnfollowUser removes id from the following set. Idempotent.
func (store *socialStore) UnfollowUser(id string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	before := len(store.following)
	store.following = slices.DeleteFunc(store.following, func(f string) bool { return f == id })
	if len(store.following) != before {
		store.persistLocked()
	}
}

func (store *socialStore) IsFollowing(id string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	return slices.Contains(store.following, id)
}

func (store *socialStore) FollowingCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	return len(store.following)
}

func (store *socialStore) FollowersCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	return len(store.followers)
}

// AddActivity stamps an opaque id and timestamp, prepends and truncates.
func (store *socialStore) AddActivity(input usecase.ActivityInput) entity.Activity {
	store.mu.Lock()
	defer store.mu.Unlock()

	activity := store.addActivityLocked(entity.Activity{
		Type:     input.Type,
		TargetID: input.TargetID,
		Message:  input.Message,
	})
	store.persistLocked()

	return activity
}

func (store *socialStore) Activities() []entity.Activity {
	store.mu.Lock()
	defer store.mu.Unlock()

	activities := make([]entity.Activity, len(store.activities))
	copy(activities, store.activities)

	return activities
}

// CheckAndUnlockAchievements evaluates the rule table and returns only the
// achievements newly unlocked by this call. Unlocking is one-way: ids already
// in the unlocked set are never re-evaluated, re-stamped or re-announced.
func (store *socialStore) CheckAndUnlockAchievements(action string, metadata map[string]any) []entity.Achievement {
	store.mu.Lock()
	defer store.mu.Unlock()

	newlyUnlocked := store.unlockLocked(action, metadata)
	if len(newlyUnlocked) > 0 {
		store.persistLocked()
	}

	return newlyUnlocked
}

// Achievements returns the full badge table with unlock timestamps.
func (store *socialStore) Achievements() []entity.Achievement {
	store.mu.Lock()
	defer store.mu.Unlock()

	achievements := make([]entity.Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		achievement := entity.Achievement{
			ID:          rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			Icon:        rule.Icon,
		}
		if unlockedAt, ok := store.unlocked[rule.ID]; ok {
			at := unlockedAt
			achievement.UnlockedAt = &at
		}
		achievements = append(achievements, achievement)
	}

	return achievements
}

// AddPost creates a local post with optimistic zeroed counters. Posts are not
// persisted.
func (store *socialStore) AddPost(input usecase.PostInput) entity.SocialPost {
	store.mu.Lock()
	defer store.mu.Unlock()

	post := entity.SocialPost{
		ID:        store.node.Generate().String(),
		AuthorID:  input.AuthorID,
		Content:   input.Content,
		Images:    input.Images,
		CreatedAt: time.Now(),
	}
	store.posts = append([]entity.SocialPost{post}, store.posts...)

	store.addActivityLocked(entity.Activity{
		Type:     "post",
		TargetID: post.ID,
		Message:  "published a post",
	})
	store.unlockLocked("post", map[string]any{"postCount": len(store.posts)})
	store.persistLocked()

	return post
}

// LikePost bumps the post's optimistic like counter.
func (store *socialStore) LikePost(postID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i := range store.posts {
		if store.posts[i].ID == postID {
			store.posts[i].Likes++

			return
		}
	}
}

// SharePost bumps the post's optimistic share counter.
func (store *socialStore) SharePost(postID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i := range store.posts {
		if store.posts[i].ID == postID {
			store.posts[i].Shares++

			return
		}
	}
}

func (store *socialStore) Posts() []entity.SocialPost {
	store.mu.Lock()
	defer store.mu.Unlock()

	posts := make([]entity.SocialPost, len(store.posts))
	copy(posts, store.posts)

	return posts
}

// TrackLike logs a like activity for a product.
func (store *socialStore) TrackLike(productID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.addActivityLocked(entity.Activity{
		Type:     "like",
		TargetID: productID,
		Message:  "liked a product",
	})
	store.persistLocked()
}

// TrackShare logs a share activity and re-evaluates share achievements with
// the fresh total.
func (store *socialStore) TrackShare(productID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.shareCount++
	store.addActivityLocked(entity.Activity{
		Type:     "share",
		TargetID: productID,
		Message:  "shared a product",
	})
	store.unlockLocked("share", map[string]any{"shareCount": store.shareCount})
	store.persistLocked()
}

func (store *socialStore) SharesCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.shareCount
}

// ClearSocialData resets the store to its initial state. Used on logout.
func (store *socialStore) ClearSocialData() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.following = nil
	store.followers = nil
	store.activities = nil
	store.posts = nil
	store.unlocked = make(map[string]time.Time)
	store.shareCount = 0

	if err := store.snapshots.Delete(socialSnapshotNamespace, socialSnapshotKey); err != nil {
		store.logger.Warn("social snapshot delete failed", slog.String("error", err.Error()))
	}
}

// addActivityLocked stamps and prepends one activity, truncating the log to
// its in-memory cap. Callers hold the mutex.
func (store *socialStore) addActivityLocked(activity entity.Activity) entity.Activity {
	activity.ID = store.node.Generate().String()
	activity.CreatedAt = time.Now()

	store.activities = append([]entity.Activity{activity}, store.activities...)
	if len(store.activities) > entity.MaxActivitiesInMemory {
		store.activities = store.activities[:entity.MaxActivitiesInMemory]
	}

	return activity
}

// unlockLocked walks the rule table and unlocks every matching, not-yet-
// unlocked achievement. Each unlock stamps a time, joins the unlocked set and
// announces itself as an activity. Callers hold the mutex.
func (store *socialStore) unlockLocked(action string, metadata map[string]any) []entity.Achievement {
	var newlyUnlocked []entity.Achievement

	for _, rule := range achievementRules {
		if _, alreadyUnlocked := store.unlocked[rule.ID]; alreadyUnlocked {
			continue
		}
		if !rule.matches(action, metadata) {
			continue
		}

		now := time.Now()
		store.unlocked[rule.ID] = now

		store.addActivityLocked(entity.Activity{
			Type:     "achievement",
			TargetID: rule.ID,
			Message:  "unlocked " + rule.Title,
		})

		unlockedAt := now
		newlyUnlocked = append(newlyUnlocked, entity.Achievement{
			ID:          rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			Icon:        rule.Icon,
			UnlockedAt:  &unlockedAt,
		})
	}

	if newlyUnlocked == nil {
		newlyUnlocked = []entity.Achievement{}
	}

	return newlyUnlocked
}

// persistLocked writes the social snapshot: following/followers, the 50 most
// recent activities, the unlocked set and the share counter. Callers hold the
// mutex.
func (store *socialStore) persistLocked() {
	activities := store.activities
	if len(activities) > entity.MaxActivitiesPersisted {
		activities = activities[:entity.MaxActivitiesPersisted]
	}

	snapshot := socialSnapshot{
		Following:            store.following,
		Followers:            store.followers,
		Activities:           activities,
		UnlockedAchievements: store.unlocked,
		ShareCount:           store.shareCount,
	}
	if err := store.snapshots.Save(socialSnapshotNamespace, socialSnapshotKey, snapshot); err != nil {
		store.logger.Warn("social snapshot save failed", slog.String("error", err.Error()))
	}
}

func (store *socialStore) rehydrate() {
	var snapshot socialSnapshot
	err := store.snapshots.Load(socialSnapshotNamespace, socialSnapshotKey, &snapshot)
	if err != nil {
		if !errors.Is(err, localstore.ErrSnapshotNotFound) {
			store.logger.Warn("social snapshot load failed", slog.String("error", err.Error()))
		}

		return
	}

	store.following = snapshot.Following
	store.followers = snapshot.Followers
	store.activities = snapshot.Activities
	store.shareCount = snapshot.ShareCount
	if snapshot.UnlockedAchievements != nil {
		store.unlocked = snapshot.UnlockedAchievements
	}
}
