package mentorship

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/auth"
	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// RequestConnectionRequest is the mentorship request payload.
type RequestConnectionRequest struct {
	MentorID string `json:"mentorId" binding:"required"`
	Message  string `json:"message,omitempty"`
}

// RequestConnection asks a mentor for a connection. Re-requesting an
// existing pair returns the existing connection.
// @Summary      Request a mentorship connection
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      RequestConnectionRequest  true  "request payload"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/mentorship/request [post]
func (h *Handler) RequestConnection(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req RequestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	conn, err := h.mentorshipService.RequestConnection(c.Request.Context(), ident.UserID, auth.UserRole(ident.Role), req.MentorID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOnlyUsersMayRequest):
			c.JSON(http.StatusForbidden, ErrorResponse{Code: 40301, Message: "Only users can request mentorship"})
		case errors.Is(err, service.ErrMentorNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40403, Message: "Mentor not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to request connection"})
		}
		return
	}

	c.JSON(http.StatusCreated, conn)
}
