package community

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/community"
	"communityhub/internal/service"
)

// Search matches posts by content, author or tags. Public.
// @Summary      Search posts
// @Tags         community
// @Produce      json
// @Param        q     query     string  true   "search query"
// @Param        type  query     string  false  "restrict to one category"
// @Success      200   {array}   map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/search [get]
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40001, Message: "Query parameter q is required"})
		return
	}

	posts, err := h.communityService.Search(c.Request.Context(), query, community.PostType(c.Query("type")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPostType) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40004, Message: "Invalid post type"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Search failed"})
		return
	}

	c.JSON(http.StatusOK, posts)
}
