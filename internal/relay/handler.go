package relay

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"communityhub/internal/model/auth"
)

// IdentityResolver resolves a bearer token to an account. The auth
// service satisfies it.
type IdentityResolver interface {
	ValidateToken(ctx context.Context, token string) (*auth.User, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from a separate frontend origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests to relay sessions.
type Handler struct {
	hub      *Hub
	resolver IdentityResolver
}

// NewHandler creates the websocket handler.
func NewHandler(hub *Hub, resolver IdentityResolver) *Handler {
	return &Handler{hub: hub, resolver: resolver}
}

// Serve upgrades the request and runs the session pumps. The token comes
// from the Authorization header or, for browser websocket clients that
// cannot set headers, the token query parameter. A missing or invalid
// token still gets a session; it just cannot join rooms or send.
func (h *Handler) Serve(c *gin.Context) {
	var userID, username string
	if token := bearerToken(c); token != "" {
		if user, err := h.resolver.ValidateToken(c.Request.Context(), token); err == nil {
			userID = user.ID
			username = user.Username
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	session := newSession(h.hub, conn, userID, username)
	h.hub.Register(session)

	go session.WritePump()
	session.ReadPump()
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Query("token")
}
