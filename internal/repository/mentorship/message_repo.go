package mentorship

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"communityhub/internal/model/mentorship"
)

// MessageRepo is the messages collection repository.
type MessageRepo struct {
	collection *mongo.Collection
}

// NewMessageRepo creates a message repository.
func NewMessageRepo(db *mongo.Database) *MessageRepo {
	return &MessageRepo{
		collection: db.Collection("messages"),
	}
}

// Create inserts a message.
func (r *MessageRepo) Create(ctx context.Context, msg *mentorship.Message) error {
	msg.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// ListByConnection returns a connection's full history in ascending
// creation order.
func (r *MessageRepo) ListByConnection(ctx context.Context, connectionID string) ([]*mentorship.Message, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"connection": connectionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []*mentorship.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
