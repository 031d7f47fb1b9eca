package assist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// MentorMatchResponse lists the suggested mentors.
type MentorMatchResponse struct {
	Success      bool                  `json:"success"`
	Matches      []service.MentorMatch `json:"matches"`
	TotalMentors int                   `json:"total_mentors"`
}

// MentorMatch ranks active mentors against the caller's profile.
// @Summary      Get mentor suggestions
// @Tags         assist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MentorMatchResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/ai/mentor-match [get]
func (h *Handler) MentorMatch(c *gin.Context) {
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

	matches, total, err := h.assistService.MatchMentors(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Mentor matching service unavailable"})
		return
	}

	c.JSON(http.StatusOK, MentorMatchResponse{
		Success:      true,
		Matches:      matches,
		TotalMentors: total,
	})
}
