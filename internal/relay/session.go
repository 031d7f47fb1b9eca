package relay

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size.
	maxMessageSize = 16384

	sendBufferSize = 256
)

// Session is one websocket connection. Anonymous sockets get a Session
// with empty UserID; they may connect but every privileged event is
// answered with an error frame.
type Session struct {
	hub *Hub

	conn *websocket.Conn

	// Buffered channel of outbound frames.
	send chan []byte

	UserID   string
	Username string
}

func newSession(hub *Hub, conn *websocket.Conn, userID, username string) *Session {
	return &Session{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		UserID:   userID,
		Username: username,
	}
}

// ReadPump reads inbound frames and hands them to the hub until the
// socket closes. Runs on the upgrade goroutine.
func (s *Session) ReadPump() {
	defer func() {
		s.hub.unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("user_id", s.UserID).Msg("websocket read error")
			}
			return
		}
		s.hub.handleFrame(s, data)
	}
}

// WritePump drains the send channel to the socket and keeps the
// connection alive with pings.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues a frame without blocking. A full buffer drops the frame
// and queues a best-effort drop notice so the client can re-fetch.
func (s *Session) TrySend(data []byte) {
	select {
	case s.send <- data:
	default:
		log.Warn().Str("user_id", s.UserID).Msg("session buffer full, frame dropped")
		notice := []byte(`{"event":"error","error":"messages dropped, please refresh"}`)
		select {
		case s.send <- notice:
		default:
		}
	}
}
