package mentorship

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/mentorship"
	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// ListConnections returns the caller's connections, newest first.
// @Summary      List my mentorship connections
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/mentorship/connections [get]
func (h *Handler) ListConnections(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	conns, err := h.mentorshipService.ListConnections(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to list connections"})
		return
	}

	c.JSON(http.StatusOK, conns)
}

// UpdateStatusRequest carries the resolution.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined"`
}

// UpdateStatus accepts or declines a pending connection.
// @Summary      Resolve a mentorship request
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "connection id"
// @Param        request  body      UpdateStatusRequest  true  "resolution payload"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/mentorship/connections/{id} [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	conn, err := h.mentorshipService.UpdateStatus(c.Request.Context(), c.Param("id"), ident.UserID, mentorship.ConnectionStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConnectionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40404, Message: "Connection not found"})
		case errors.Is(err, service.ErrNotParty):
			c.JSON(http.StatusForbidden, ErrorResponse{Code: 40303, Message: "Not a party to this connection"})
		case errors.Is(err, service.ErrOnlyMentorMayAccept):
			c.JSON(http.StatusForbidden, ErrorResponse{Code: 40304, Message: "Only the mentor can accept"})
		case errors.Is(err, service.ErrConnectionResolved):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40007, Message: "Connection is already resolved"})
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40005, Message: "Invalid status"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to update connection"})
		}
		return
	}

	c.JSON(http.StatusOK, conn)
}
