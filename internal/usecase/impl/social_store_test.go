package impl

import (
	"fmt"
	"testing"

	"sokoni/internal/domain/entity"
	"sokoni/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSocialFixture(t *testing.T) (usecase.SocialStore, *memorySnapshotStore) {
	t.Helper()

	snapshots := newMemorySnapshotStore()
	store := NewSocialStore(SocialStoreParams{
		Node:      testSnowflakeNode(t),
		Snapshots: snapshots,
		Logger:    testLogger(),
	})

	return store, snapshots
}

func TestSocialStore_FollowIsIdempotent(t *testing.T) {
	store, _ := newSocialFixture(t)

	store.FollowUser("artisan-1")
	store.FollowUser("artisan-1")
	store.FollowUser("artisan-1")

	assert.Equal(t, 1, store.FollowingCount())
	assert.True(t, store.IsFollowing("artisan-1"))

	// Exactly one follow activity despite three calls.
	var followActivities int
	for _, activity := range store.Activities() {
		if activity.Type == "follow" {
			followActivities++
		}
	}
	assert.Equal(t, 1, followActivities)
}

func TestSocialStore_Unfollow(t *testing.T) {
	store, _ := newSocialFixture(t)

	store.FollowUser("artisan-1")
	store.UnfollowUser("artisan-1")
	store.UnfollowUser("artisan-1")

	assert.Equal(t, 0, store.FollowingCount())
	assert.False(t, store.IsFollowing("artisan-1"))
}

func TestSocialStore_ActivityLogIsBounded(t *testing.T) {
	store, _ := newSocialFixture(t)

	for i := 0; i < entity.MaxActivitiesInMemory+20; i++ {
		store.AddActivity(usecase.ActivityInput{Type: "like", TargetID: fmt.Sprintf("p-%d", i)})
	}

	activities := store.Activities()
	assert.Len(t, activities, entity.MaxActivitiesInMemory)
	// Most recent first.
	assert.Equal(t, fmt.Sprintf("p-%d", entity.MaxActivitiesInMemory+19), activities[0].TargetID)
}

func TestSocialStore_ActivityStamping(t *testing.T) {
	store, _ := newSocialFixture(t)

	first := store.AddActivity(usecase.ActivityInput{Type: "like", TargetID: "p-1"})
	second := store.AddActivity(usecase.ActivityInput{Type: "share", TargetID: "p-2"})

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestSocialStore_ArtEnthusiastUnlocksExactlyOnce(t *testing.T) {
	store, _ := newSocialFixture(t)
	metadata := map[string]any{"totalPurchases": 5}

	unlocked := store.CheckAndUnlockAchievements("purchase", metadata)

	ids := make([]string, 0, len(unlocked))
	for _, achievement := range unlocked {
		ids = append(ids, achievement.ID)
		require.NotNil(t, achievement.UnlockedAt)
	}
	assert.Contains(t, ids, "art_enthusiast")

	// Re-evaluation unlocks nothing and emits no duplicate activity.
	again := store.CheckAndUnlockAchievements("purchase", metadata)
	assert.Empty(t, again)

	var achievementActivities int
	for _, activity := range store.Activities() {
		if activity.Type == "achievement" && activity.TargetID == "art_enthusiast" {
			achievementActivities++
		}
	}
	assert.Equal(t, 1, achievementActivities)
}

func TestSocialStore_AchievementBelowThreshold(t *testing.T) {
	store, _ := newSocialFixture(t)

	unlocked := store.CheckAndUnlockAchievements("purchase", map[string]any{"totalPurchases": 4})

	for _, achievement := range unlocked {
		assert.NotEqual(t, "art_enthusiast", achievement.ID)
	}
	assert.Empty(t, store.CheckAndUnlockAchievements("follow", map[string]any{"followingCount": 2}))
}

func TestSocialStore_MetadataArrivesLooselyTyped(t *testing.T) {
	store, _ := newSocialFixture(t)

	// JSON-decoded metadata carries float64, not int.
	unlocked := store.CheckAndUnlockAchievements("purchase", map[string]any{"totalPurchases": float64(5)})

	ids := make([]string, 0, len(unlocked))
	for _, achievement := range unlocked {
		ids = append(ids, achievement.ID)
	}
	assert.Contains(t, ids, "art_enthusiast")
}

func TestSocialStore_TrackShareReevaluatesAchievements(t *testing.T) {
	store, _ := newSocialFixture(t)

	for i := 0; i < 25; i++ {
		store.TrackShare(fmt.Sprintf("p-%d", i))
	}

	assert.Equal(t, 25, store.SharesCount())

	unlockedAt := func() *entity.Achievement {
		for _, achievement := range store.Achievements() {
			if achievement.ID == "trendsetter" {
				return &achievement
			}
		}

		return nil
	}()
	require.NotNil(t, unlockedAt)
	assert.NotNil(t, unlockedAt.UnlockedAt)
}

func TestSocialStore_Posts(t *testing.T) {
	store, _ := newSocialFixture(t)

	post := store.AddPost(usecase.PostInput{AuthorID: "ada", Content: "New batch out of the kiln"})
	assert.NotEmpty(t, post.ID)
	assert.Zero(t, post.Likes)

	store.LikePost(post.ID)
	store.LikePost(post.ID)
	store.SharePost(post.ID)

	posts := store.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].Likes)
	assert.Equal(t, 1, posts[0].Shares)

	// Unknown post ids are ignored.
	store.LikePost("missing")
}

func TestSocialStore_ClearSocialData(t *testing.T) {
	store, snapshots := newSocialFixture(t)

	store.FollowUser("artisan-1")
	store.TrackShare("p-1")
	store.AddPost(usecase.PostInput{AuthorID: "ada", Content: "hi"})
	store.CheckAndUnlockAchievements("purchase", map[string]any{"totalPurchases": 5})

	store.ClearSocialData()

	assert.Zero(t, store.FollowingCount())
	assert.Empty(t, store.Activities())
	assert.Empty(t, store.Posts())
	assert.Zero(t, store.SharesCount())
	for _, achievement := range store.Achievements() {
		assert.Nil(t, achievement.UnlockedAt)
	}

	// Snapshot is gone too: a fresh store starts empty.
	revived := NewSocialStore(SocialStoreParams{
		Node:      testSnowflakeNode(t),
		Snapshots: snapshots,
		Logger:    testLogger(),
	})
	assert.Zero(t, revived.FollowingCount())
}

func TestSocialStore_SnapshotRoundTrip(t *testing.T) {
	store, snapshots := newSocialFixture(t)

	store.FollowUser("artisan-1")
	store.FollowUser("artisan-2")
	store.CheckAndUnlockAchievements("purchase", map[string]any{"totalPurchases": 5})
	store.AddPost(usecase.PostInput{AuthorID: "ada", Content: "not persisted"})

	for i := 0; i < entity.MaxActivitiesPersisted+30; i++ {
		store.AddActivity(usecase.ActivityInput{Type: "like", TargetID: fmt.Sprintf("p-%d", i)})
	}

	revived := NewSocialStore(SocialStoreParams{
		Node:      testSnowflakeNode(t),
		Snapshots: snapshots,
		Logger:    testLogger(),
	})

	assert.Equal(t, 2, revived.FollowingCount())
	assert.True(t, revived.IsFollowing("artisan-1"))
	// Persisted slice is truncated.
	assert.Len(t, revived.Activities(), entity.MaxActivitiesPersisted)
	// Unlock survives: re-evaluation stays silent.
	assert.Empty(t, revived.CheckAndUnlockAchievements("purchase", map[string]any{"totalPurchases": 5}))
	// Posts do not survive.
	assert.Empty(t, revived.Posts())
}
