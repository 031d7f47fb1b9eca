package assist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// ChatRequest is one chatbot exchange.
type ChatRequest struct {
	Message string             `json:"message" binding:"required"`
	History []service.ChatTurn `json:"history,omitempty"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers a chatbot message with the caller's profile as context.
// @Summary      Chat with the community assistant
// @Tags         assist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ChatRequest  true  "chat payload"
// @Success      200      {object}  ChatResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Router       /api/ai/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Code: 40401, Message: "User not found"})
		return
	}

	reply, err := h.assistService.ChatReply(c.Request.Context(), user, req.Message, req.History)
	if err != nil {
		if errors.Is(err, service.ErrAssistBusy) {
			c.JSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    42901,
				Message: "AI service is temporarily unavailable due to high demand. Please try again later.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Error processing your request"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
