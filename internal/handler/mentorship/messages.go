package mentorship

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// ListMessages returns a connection's message history in order.
// @Summary      Get message history for a connection
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "connection id"
// @Success      200  {array}   map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/mentorship/connections/{id}/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	msgs, err := h.mentorshipService.ListMessages(c.Request.Context(), c.Param("id"), ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConnectionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40404, Message: "Connection not found"})
		case errors.Is(err, service.ErrNotParty):
			c.JSON(http.StatusForbidden, ErrorResponse{Code: 40303, Message: "Not a party to this connection"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to list messages"})
		}
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// SendMessageRequest is the message payload.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage posts a message into an accepted connection and relays it
// to any live websocket sessions in the room.
// @Summary      Send a message in a connection
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "connection id"
// @Param        request  body      SendMessageRequest  true  "message payload"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/mentorship/connections/{id}/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	connectionID := c.Param("id")
	msg, err := h.mentorshipService.SendMessage(c.Request.Context(), connectionID, ident.UserID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConnectionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40404, Message: "Connection not found"})
		case errors.Is(err, service.ErrNotParty):
			c.JSON(http.StatusForbidden, ErrorResponse{Code: 40303, Message: "Not a party to this connection"})
		case errors.Is(err, service.ErrConnectionNotActive):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40006, Message: "Connection is not active"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to send message"})
		}
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(connectionID, msg)
	}

	c.JSON(http.StatusCreated, msg)
}
