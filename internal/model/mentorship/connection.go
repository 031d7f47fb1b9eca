package mentorship

import (
	"time"
)

// ConnectionStatus is the lifecycle state of a mentorship connection.
// The state machine is monotonic: pending -> accepted | declined, and the
// two outcomes are terminal.
type ConnectionStatus string

const (
	StatusPending  ConnectionStatus = "pending"
	StatusAccepted ConnectionStatus = "accepted"
	StatusDeclined ConnectionStatus = "declined"
)

// IsValid checks that the status is one of the known states.
func (s ConnectionStatus) IsValid() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDeclined
}

// IsTerminal reports whether the state admits no further transitions.
func (s ConnectionStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// Connection is a mentorship relationship between one mentor and one
// mentee. Created only by the mentee, always in the pending state.
type Connection struct {
	ID        string           `bson:"_id,omitempty" json:"id"`
	Mentor    string           `bson:"mentor" json:"mentor"`
	Mentee    string           `bson:"mentee" json:"mentee"`
	Status    ConnectionStatus `bson:"status" json:"status"`
	Message   string           `bson:"message" json:"message"`
	CreatedAt time.Time        `bson:"created_at" json:"createdAt"`

	// Peer usernames resolved for display, not persisted.
	MentorName string `bson:"-" json:"mentorName,omitempty"`
	MenteeName string `bson:"-" json:"menteeName,omitempty"`
}

// IsParty reports whether userID is the mentor or the mentee.
func (c *Connection) IsParty(userID string) bool {
	return c.Mentor == userID || c.Mentee == userID
}

// OtherParty returns the counterpart of userID, or "" if userID is not a
// party to the connection.
func (c *Connection) OtherParty(userID string) string {
	switch userID {
	case c.Mentor:
		return c.Mentee
	case c.Mentee:
		return c.Mentor
	default:
		return ""
	}
}
