package mentorship

import (
	"communityhub/internal/relay"
	"communityhub/internal/service"
)

// Handler serves the connection lifecycle and message endpoints.
type Handler struct {
	mentorshipService *service.MentorshipService
	hub               *relay.Hub
}

// NewHandler creates the mentorship handler. hub may be nil in tests;
// messages are then persisted without live delivery.
func NewHandler(mentorshipService *service.MentorshipService, hub *relay.Hub) *Handler {
	return &Handler{
		mentorshipService: mentorshipService,
		hub:               hub,
	}
}

// ErrorResponse is the error body shared by all API endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
