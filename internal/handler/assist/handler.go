package assist

import (
	"communityhub/internal/service"
)

// Handler serves the AI assistant endpoints.
type Handler struct {
	assistService *service.AssistService
	authService   *service.AuthService
}

// NewHandler creates the assist handler.
func NewHandler(assistService *service.AssistService, authService *service.AuthService) *Handler {
	return &Handler{
		assistService: assistService,
		authService:   authService,
	}
}

// ErrorResponse is the error body shared by all API endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
