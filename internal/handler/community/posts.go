package community

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/community"
	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// CreatePostRequest is the new post payload.
type CreatePostRequest struct {
	Content string   `json:"content" binding:"required"`
	Type    string   `json:"type" binding:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// ListPosts returns one category of posts, newest first. Public.
// @Summary      List posts by category
// @Tags         community
// @Produce      json
// @Param        type  path      string  true  "post category"  Enums(discussions, milestones, q-and-a)
// @Success      200   {array}   map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/posts/{type} [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.communityService.ListPosts(c.Request.Context(), community.PostType(c.Param("type")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPostType) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40004, Message: "Invalid post type"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost creates a post authored by the caller.
// @Summary      Create a post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreatePostRequest  true  "post payload"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	post, err := h.communityService.CreatePost(c.Request.Context(), ident.Username, req.Content, community.PostType(req.Type), req.Tags)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPostType) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40004, Message: "Invalid post type"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}
