package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/auth"
	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// GetProfile returns the authenticated account.
// @Summary      Get the current user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/auth/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
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

	c.JSON(http.StatusOK, user)
}

// UpdateProfileRequest carries the editable profile fields. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	FullName        *string  `json:"fullName,omitempty"`
	Email           *string  `json:"email,omitempty" binding:"omitempty,email"`
	Bio             *string  `json:"bio,omitempty"`
	Location        *string  `json:"location,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	MentorshipAreas []string `json:"mentorshipAreas,omitempty"`
}

// UpdateProfile edits the authenticated account's profile.
// @Summary      Update the current user's profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      UpdateProfileRequest  true  "profile fields"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/auth/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: 40101, Message: "Authentication required"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), ident.UserID, &auth.ProfileUpdate{
		FullName:        req.FullName,
		Email:           req.Email,
		Bio:             req.Bio,
		Location:        req.Location,
		Skills:          req.Skills,
		Interests:       req.Interests,
		MentorshipAreas: req.MentorshipAreas,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40009, Message: "Email is already taken"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 40401, Message: "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Profile update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
