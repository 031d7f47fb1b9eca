package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/service"
)

// RefreshRequest carries the refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh mints a new access token.
// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "refresh payload"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrAccountDeactivated):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40102, Message: "Refresh token is invalid or expired"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		TokenType:    result.TokenType,
		User:         result.User,
	})
}
