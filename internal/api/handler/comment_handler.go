package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sgsm/taskboard/internal/core/ports"
)

// CommentHandler handles the project comment thread.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Add handles POST /v1/projects/:id/comments.
//
// @Summary      Comment on a project
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/projects/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// List handles GET /v1/projects/:id/comments.
//
// @Summary      List project comments, pinned first
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  commentThreadResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/projects/{id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	thread, err := h.service.ListComments(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentThreadResponse{
		Pinned:   toCommentResponses(thread.Pinned),
		Unpinned: toCommentResponses(thread.Unpinned),
	})
}

// Delete handles DELETE /v1/projects/:id/comments/:comment_id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id          path  string  true  "Project ID"
// @Param        comment_id  path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteComment(c.Request().Context(), actor, c.Param("id"), c.Param("comment_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// TogglePin handles PATCH /v1/projects/:id/comments/:comment_id/pin.
//
// @Summary      Pin or unpin a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true  "Project ID"
// @Param        comment_id  path      string  true  "Comment ID"
// @Success      200         {object}  commentResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/projects/{id}/comments/{comment_id}/pin [patch]
func (h *CommentHandler) TogglePin(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	comment, err := h.service.TogglePin(c.Request().Context(), actor, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}
