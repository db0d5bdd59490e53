package handlers

import (
	"net/http"

	"github.com/linkup-app/feed-engine/internal/engine"
	"github.com/linkup-app/feed-engine/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler exposes the like toggle
type LikeHandler struct {
	likeLedger     *engine.LikeLedger
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeLedger *engine.LikeLedger, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeLedger:     likeLedger,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes/toggle", h.TogglePostLike)
}

// TogglePostLike flips the acting user's like on the post and returns the
// resulting like state
func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	actor := getActor(c)
	postID := c.Param("post_id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	item := engine.FeedItem{Post: *post}
	if err := h.likeLedger.Toggle(&item, actor); err != nil {
		return engineError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post_id":    postID,
		"liked":      h.likeLedger.IsLiked(postID, actor.ID),
		"like_count": h.likeLedger.Count(postID),
	})
}
