package mentorship

import (
	"time"
)

// Message is a private message inside one connection. Messages exist only
// while the parent connection is accepted, are immutable after creation,
// and have no independent deletion path.
type Message struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Connection string    `bson:"connection" json:"connection"`
	Sender     string    `bson:"sender" json:"sender"`
	Receiver   string    `bson:"receiver" json:"receiver"`
	Content    string    `bson:"content" json:"content"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`

	// Usernames resolved for display, not persisted.
	SenderName string `bson:"-" json:"senderName,omitempty"`
}
