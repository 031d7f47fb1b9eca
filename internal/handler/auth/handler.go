package auth

import (
	"communityhub/internal/service"
)

// Handler serves the account endpoints.
type Handler struct {
	authService *service.AuthService
}

// NewHandler creates the auth handler.
func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}
