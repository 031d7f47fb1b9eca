package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// ChangePasswordRequest carries the current and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword replaces the account password after verifying the
// current one.
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ChangePasswordRequest  true  "password change payload"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/auth/change-password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), ident.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40003, Message: "Current password is incorrect"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40401, Message: "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Password change failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}
