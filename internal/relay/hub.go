// Package relay fans private mentorship messages out to websocket
// sessions grouped into per-connection rooms. Persistence stays with the
// mentorship service; the relay only verifies membership and delivers.
package relay

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"communityhub/internal/model/mentorship"
)

const frameTimeout = 10 * time.Second

// Messenger is the slice of the mentorship service the relay needs.
type Messenger interface {
	VerifyParty(ctx context.Context, connectionID, userID string) error
	SendMessage(ctx context.Context, connectionID, senderID, content string) (*mentorship.Message, error)
}

// Hub tracks sessions and the rooms they joined. Rooms are keyed by
// connection id; a session must pass the membership check before it is
// added to a room.
type Hub struct {
	mu sync.RWMutex

	// connection id -> joined sessions
	rooms map[string]map[*Session]bool

	// session -> joined connection ids, for cleanup on disconnect
	sessionRooms map[*Session]map[string]bool

	messenger Messenger
}

// NewHub creates an empty hub.
func NewHub(messenger Messenger) *Hub {
	return &Hub{
		rooms:        make(map[string]map[*Session]bool),
		sessionRooms: make(map[*Session]map[string]bool),
		messenger:    messenger,
	}
}

// Register adds a session to the hub. The session joins no rooms yet.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	h.sessionRooms[s] = make(map[string]bool)
	h.mu.Unlock()

	log.Debug().Str("user_id", s.UserID).Msg("relay session registered")
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	for connID := range h.sessionRooms[s] {
		if sessions, ok := h.rooms[connID]; ok {
			delete(sessions, s)
			if len(sessions) == 0 {
				delete(h.rooms, connID)
			}
		}
	}
	delete(h.sessionRooms, s)
	h.mu.Unlock()

	close(s.send)
	log.Debug().Str("user_id", s.UserID).Msg("relay session unregistered")
}

// Broadcast delivers a persisted message to every session in the room,
// including the sender's own sessions. HTTP handlers call this after the
// mentorship service has accepted the message.
func (h *Hub) Broadcast(connectionID string, msg *mentorship.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal relay message")
		return
	}
	frame := encodeFrame(Frame{
		Event:        EventReceiveMessage,
		ConnectionID: connectionID,
		Message:      payload,
	})

	h.mu.RLock()
	sessions := h.rooms[connectionID]
	for s := range sessions {
		s.TrySend(frame)
	}
	h.mu.RUnlock()
}

// RoomSize returns the number of sessions in a room.
func (h *Hub) RoomSize(connectionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[connectionID])
}

// handleFrame dispatches one inbound frame from a session.
func (h *Hub) handleFrame(s *Session, data []byte) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.TrySend(errorFrame(EventError, "malformed frame"))
		return
	}

	switch frame.Event {
	case EventJoinRoom:
		h.joinRoom(s, frame.ConnectionID)
	case EventSendMessage:
		h.sendMessage(s, frame.ConnectionID, frame.Content)
	default:
		s.TrySend(errorFrame(EventError, "unknown event"))
	}
}

func (h *Hub) joinRoom(s *Session, connectionID string) {
	if s.UserID == "" {
		s.TrySend(errorFrame(EventError, "authentication required"))
		return
	}
	if connectionID == "" {
		s.TrySend(errorFrame(EventError, "connectionId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()
	if err := h.messenger.VerifyParty(ctx, connectionID, s.UserID); err != nil {
		s.TrySend(errorFrame(EventError, "not authorized for this connection"))
		return
	}

	h.mu.Lock()
	if h.rooms[connectionID] == nil {
		h.rooms[connectionID] = make(map[*Session]bool)
	}
	h.rooms[connectionID][s] = true
	if h.sessionRooms[s] != nil {
		h.sessionRooms[s][connectionID] = true
	}
	h.mu.Unlock()

	log.Debug().
		Str("user_id", s.UserID).
		Str("connection_id", connectionID).
		Msg("session joined room")

	s.TrySend(encodeFrame(Frame{Event: EventJoined, ConnectionID: connectionID}))
}

func (h *Hub) sendMessage(s *Session, connectionID, content string) {
	if s.UserID == "" {
		s.TrySend(errorFrame(EventMessageError, "authentication required"))
		return
	}
	if connectionID == "" || content == "" {
		s.TrySend(errorFrame(EventMessageError, "connectionId and content are required"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()
	msg, err := h.messenger.SendMessage(ctx, connectionID, s.UserID, content)
	if err != nil {
		s.TrySend(errorFrame(EventMessageError, err.Error()))
		return
	}

	h.Broadcast(connectionID, msg)
}

// Shutdown closes every session's socket.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.sessionRooms {
		_ = s.conn.Close()
	}
}
