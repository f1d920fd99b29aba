package handler

import (
	"log/slog"
	"net/http"

	"sokoni/internal/delivery/http/response"
	"sokoni/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SocialHandlerParams holds dependencies for SocialHandler, injected by Fx.
type SocialHandlerParams struct {
	fx.In

	SocialStore usecase.SocialStore
	Logger      *slog.Logger
}

// SocialHandler serves the client-side social graph and gamification state.
type SocialHandler struct {
	social usecase.SocialStore
	logger *slog.Logger
}

// NewSocialHandler is the constructor for SocialHandler.
func NewSocialHandler(params SocialHandlerParams) *SocialHandler {
	return &SocialHandler{
		social: params.SocialStore,
		logger: params.Logger,
	}
}

// CreatePostRequest represents the request body for a new post.
type CreatePostRequest struct {
	AuthorID string   `json:"author_id" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Images   []string `json:"images"`
}

// followPayload reports the follow state for a user id.
type followPayload struct {
	UserID         string `json:"user_id"`
	Following      bool   `json:"following"`
	FollowingCount int    `json:"following_count"`
	FollowersCount int    `json:"followers_count"`
}

// Follow adds the user to the following set. Idempotent.
func (h *SocialHandler) Follow(c echo.Context) error {
	id := c.Param("id")
	h.social.FollowUser(id)

	return response.Success(c, http.StatusOK, h.followPayload(id), "Following")
}

// Unfollow removes the user from the following set. Idempotent.
func (h *SocialHandler) Unfollow(c echo.Context) error {
	id := c.Param("id")
	h.social.UnfollowUser(id)

	return response.Success(c, http.StatusOK, h.followPayload(id), "Unfollowed")
}

// FollowState reports whether the user is followed.
func (h *SocialHandler) FollowState(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.followPayload(c.Param("id")), "")
}

// ListActivities returns the most-recent-first activity log.
func (h *SocialHandler) ListActivities(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.social.Activities(), "")
}

// ListAchievements returns the full badge table with unlock timestamps.
func (h *SocialHandler) ListAchievements(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.social.Achievements(), "")
}

// CreatePost creates a local post with zeroed counters.
func (h *SocialHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	post := h.social.AddPost(usecase.PostInput{
		AuthorID: req.AuthorID,
		Content:  req.Content,
		Images:   req.Images,
	})

	return response.Success(c, http.StatusCreated, post, "Post created")
}

// ListPosts returns the local posts.
func (h *SocialHandler) ListPosts(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.social.Posts(), "")
}

// LikePost bumps a post's optimistic like counter.
func (h *SocialHandler) LikePost(c echo.Context) error {
	h.social.LikePost(c.Param("id"))

	return response.Success(c, http.StatusOK, h.social.Posts(), "Post liked")
}

// SharePost bumps a post's optimistic share counter.
func (h *SocialHandler) SharePost(c echo.Context) error {
	h.social.SharePost(c.Param("id"))

	return response.Success(c, http.StatusOK, h.social.Posts(), "Post shared")
}

// TrackLike logs a like activity for a product.
func (h *SocialHandler) TrackLike(c echo.Context) error {
	h.social.TrackLike(c.Param("id"))

	return response.Success(c, http.StatusOK, h.social.Activities(), "Like tracked")
}

// TrackShare logs a share activity and re-evaluates share achievements.
func (h *SocialHandler) TrackShare(c echo.Context) error {
	h.social.TrackShare(c.Param("id"))

	return response.Success(c, http.StatusOK, map[string]any{
		"shares_count": h.social.SharesCount(),
		"activities":   h.social.Activities(),
	}, "Share tracked")
}

// ClearSocialData resets the store to its initial state.
func (h *SocialHandler) ClearSocialData(c echo.Context) error {
	h.social.ClearSocialData()

	return response.Success(c, http.StatusOK, nil, "Social data cleared")
}

func (h *SocialHandler) followPayload(id string) followPayload {
	return followPayload{
		UserID:         id,
		Following:      h.social.IsFollowing(id),
		FollowingCount: h.social.FollowingCount(),
		FollowersCount: h.social.FollowersCount(),
	}
}
