package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/auth"
	"communityhub/internal/service"
)

// ListUsers returns every account. Admin only.
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/auth/admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateRoleRequest carries the new role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user mentor admin"`
}

// UpdateUserRole changes an account's role. Admin only.
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "user id"
// @Param        request  body      UpdateRoleRequest  true  "role payload"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/auth/admin/users/{id}/role [put]
func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	user, err := h.authService.UpdateUserRole(c.Request.Context(), c.Param("id"), auth.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40401, Message: "User not found"})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40002, Message: "Invalid role"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Role update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateStatusRequest carries the active flag.
type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateUserStatus activates or deactivates an account. Admin only.
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "user id"
// @Param        request  body      UpdateStatusRequest  true  "status payload"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/auth/admin/users/{id}/status [put]
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	user, err := h.authService.SetUserActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40401, Message: "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Status update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
