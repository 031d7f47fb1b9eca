package community

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// ToggleLike flips the caller's like on a post and returns the updated
// post.
// @Summary      Like or unlike a post
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/posts/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	post, err := h.communityService.ToggleLike(c.Request.Context(), c.Param("id"), ident.Username)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40402, Message: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to update likes"})
		return
	}

	c.JSON(http.StatusOK, post)
}
