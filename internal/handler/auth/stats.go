package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
)

// GetStats returns the authenticated user's activity counters.
// @Summary      Get the current user's activity stats
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.UserStats
// @Failure      401  {object}  ErrorResponse
// @Router       /api/auth/user-stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	stats, err := h.authService.GetUserStats(c.Request.Context(), ident.UserID, ident.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
