package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/service"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username        string   `json:"username" binding:"required,min=3,max=50"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=6"`
	Role            string   `json:"role,omitempty" binding:"omitempty,oneof=user mentor admin"`
	Bio             string   `json:"bio,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	MentorshipAreas []string `json:"mentorshipAreas,omitempty"`
}

// Register creates an account and signs it in.
// @Summary      Register a new account
// @Description  Creates an account and returns access and refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "registration payload"
// @Success      201      {object}  TokenResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		Bio:             req.Bio,
		Skills:          req.Skills,
		Interests:       req.Interests,
		MentorshipAreas: req.MentorshipAreas,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40008, Message: err.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 40002, Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		TokenType:    result.TokenType,
		User:         result.User,
	})
}
