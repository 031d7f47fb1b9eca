package assist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
)

// Recommendations suggests posts for the caller's feed.
// @Summary      Get personalized content recommendations
// @Tags         assist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   service.Recommendation
// @Failure      401  {object}  ErrorResponse
// @Router       /api/ai/recommendations [get]
func (h *Handler) Recommendations(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Code: 40401, Message: "User not found"})
		return
	}

	recs, err := h.assistService.Recommendations(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Could not fetch recommendations"})
		return
	}

	c.JSON(http.StatusOK, recs)
}
