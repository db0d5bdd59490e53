package handlers

import (
	"net/http"

	"github.com/linkup-app/feed-engine/internal/engine"
	"github.com/linkup-app/feed-engine/internal/media"
	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the visible feed page and post creation
type FeedHandler struct {
	feedStore      *engine.FeedStore
	likeLedger     *engine.LikeLedger
	mediaResolver  *media.Resolver
	postRepository repositories.PostRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedStore *engine.FeedStore, likeLedger *engine.LikeLedger, mediaResolver *media.Resolver, postRepo repositories.PostRepository) *FeedHandler {
	return &FeedHandler{
		feedStore:      feedStore,
		likeLedger:     likeLedger,
		mediaResolver:  mediaResolver,
		postRepository: postRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.POST("/posts", h.CreatePost)
}

// FeedPostView is a feed item with its derived like state and resolved media
// URL, as sent to the UI.
type FeedPostView struct {
	engine.FeedItem
	MediaURL  string `json:"media_url,omitempty"`
	LikeCount int    `json:"like_count"`
	LikedByMe bool   `json:"liked_by_me"`
}

// GetFeed reloads the visible page and returns it with per-post like state
// for the acting user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	actor := getActor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	if err := h.feedStore.Load(c.Request().Context()); err != nil {
		return engineError(err)
	}

	items := h.feedStore.Posts()
	views := make([]FeedPostView, len(items))
	for i, item := range items {
		views[i] = FeedPostView{
			FeedItem:  item,
			MediaURL:  h.mediaResolver.URL(item.Media),
			LikeCount: h.likeLedger.Count(item.HexID()),
			LikedByMe: h.likeLedger.IsLiked(item.HexID(), actor.ID),
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": views},
	})
}

// CreatePost creates a new post authored by the acting user. The media kind
// is classified here, once, from the uploaded file name.
func (h *FeedHandler) CreatePost(c echo.Context) error {
	actor := getActor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID: actor.ID,
		Body:     req.Body,
		Media:    models.NewMediaRef(req.File),
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}
