package relay

import "encoding/json"

// Client to server events.
const (
	EventJoinRoom    = "joinRoom"
	EventSendMessage = "sendMessage"
)

// Server to client events.
const (
	EventJoined         = "joined"
	EventReceiveMessage = "receiveMessage"
	EventError          = "error"
	EventMessageError   = "messageError"
)

// Frame is the wire envelope for both directions. Fields not used by an
// event are omitted.
type Frame struct {
	Event        string          `json:"event"`
	ConnectionID string          `json:"connectionId,omitempty"`
	Content      string          `json:"content,omitempty"`
	Message      json.RawMessage `json:"message,omitempty"`
	Error        string          `json:"error,omitempty"`
}

func encodeFrame(f Frame) []byte {
	data, err := json.Marshal(f)
	if err != nil {
		return []byte(`{"event":"error","error":"internal error"}`)
	}
	return data
}

func errorFrame(event, message string) []byte {
	return encodeFrame(Frame{Event: event, Error: message})
}
