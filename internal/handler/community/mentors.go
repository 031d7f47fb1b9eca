package community

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"communityhub/internal/model/auth"
	"communityhub/internal/pkg/cache"
)

// ListMentors returns the directory of active mentors. Public. The
// directory is cached briefly since it changes rarely and is hit on
// every browse.
// @Summary      List active mentors
// @Tags         community
// @Produce      json
// @Success      200  {array}  map[string]interface{}
// @Router       /api/mentors [get]
func (h *Handler) ListMentors(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached []*auth.User
		if err := h.cache.Get(ctx, cache.MentorDirectoryCacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	mentors, err := h.authService.ListMentors(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to list mentors"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cache.MentorDirectoryCacheKey, mentors, cache.MentorDirectoryCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache mentor directory")
		}
	}

	c.JSON(http.StatusOK, mentors)
}
