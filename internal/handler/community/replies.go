package community

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// AddReplyRequest is the reply payload.
type AddReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddReply appends a reply and returns the updated post.
// @Summary      Reply to a post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string           true  "post id"
// @Param        request  body      AddReplyRequest  true  "reply payload"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/posts/{id}/replies [post]
func (h *Handler) AddReply(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	post, err := h.communityService.AddReply(c.Request.Context(), c.Param("id"), ident.Username, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40402, Message: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to add reply"})
		return
	}

	c.JSON(http.StatusCreated, post)
}
