package handlers

import (
	"net/http"

	"github.com/linkup-app/feed-engine/internal/engine"
	"github.com/linkup-app/feed-engine/internal/media"
	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/labstack/echo/v4"
)

// SessionHandler exposes the post detail session: selecting a post, reading
// its detail and thread, submitting comments, and closing the view.
type SessionHandler struct {
	session       *engine.PostDetailSession
	mediaResolver *media.Resolver
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(session *engine.PostDetailSession, mediaResolver *media.Resolver) *SessionHandler {
	return &SessionHandler{
		session:       session,
		mediaResolver: mediaResolver,
	}
}

// RegisterSessionRoutes registers detail-session routes
func (h *SessionHandler) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/select", h.SelectPost)
	g.GET("/session", h.GetSession)
	g.POST("/session/comments", h.SubmitComment)
	g.POST("/session/close", h.CloseSession)
}

// SelectPost targets a post for the detail view, replacing any prior
// selection
func (h *SessionHandler) SelectPost(c echo.Context) error {
	actor := getActor(c)
	postID := c.Param("post_id")

	if err := h.session.Select(c.Request().Context(), postID, actor); err != nil {
		return engineError(err)
	}
	return h.GetSession(c)
}

// GetSession returns the current session state, the resolved detail, and the
// comment thread
func (h *SessionHandler) GetSession(c echo.Context) error {
	resp := echo.Map{
		"state":   h.session.State(),
		"post_id": h.session.PostID(),
	}

	if detail := h.session.Detail(); detail != nil {
		resp["detail"] = echo.Map{
			"post":      detail,
			"media_url": h.mediaResolver.URL(detail.Media),
		}
	}
	if err := h.session.Err(); err != nil {
		resp["error"] = err.Error()
	}
	if thread := h.session.Thread(); thread != nil {
		resp["comments"] = thread.Comments()
		resp["draft"] = thread.Draft()
	}

	return c.JSON(http.StatusOK, resp)
}

// SubmitComment submits a comment on the currently open post
func (h *SessionHandler) SubmitComment(c echo.Context) error {
	actor := getActor(c)

	var req models.SubmitCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.session.SubmitComment(req.Text, actor); err != nil {
		return engineError(err)
	}
	return h.GetSession(c)
}

// CloseSession discards the detail and the comment thread
func (h *SessionHandler) CloseSession(c echo.Context) error {
	h.session.Close()
	return c.NoContent(http.StatusNoContent)
}
