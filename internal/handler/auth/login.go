package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/service"
)

// LoginRequest accepts a username or an email as the identifier.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an account.
// @Summary      Log in
// @Description  Authenticates by username or email and returns tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "login payload"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Invalid credentials"})
		case errors.Is(err, service.ErrAccountDeactivated):
			c.JSON(http.StatusForbidden, ErrorResponse{Code: 40302, Message: "Account is deactivated"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Login failed"})
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
