package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tagblog/tagblog/internal/api/metrics"
	"github.com/tagblog/tagblog/internal/core/domain"
	"github.com/tagblog/tagblog/internal/core/ports"
)

// CommentHandler serves the comment JSON API.
type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type commentResponse struct {
	*domain.Comment
	Author string `json:"author"`
}

// ListForPost handles GET /posts/:id/comments.
func (h *CommentHandler) ListForPost(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListForPost(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentResponse{Comment: cm, Author: cm.AuthorTag()})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /posts/:id/comments.
func (h *CommentHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), user, postID, req.Content)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, commentResponse{Comment: comment, Author: comment.AuthorTag()})
}

// Delete handles DELETE /comments/:id.
func (h *CommentHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
