package mentorship

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"communityhub/internal/model/mentorship"
)

// ConnectionRepo is the connections collection repository.
type ConnectionRepo struct {
	collection *mongo.Collection
}

// NewConnectionRepo creates a connection repository.
func NewConnectionRepo(db *mongo.Database) *ConnectionRepo {
	return &ConnectionRepo{
		collection: db.Collection("connections"),
	}
}

// Create inserts a connection.
func (r *ConnectionRepo) Create(ctx context.Context, conn *mentorship.Connection) error {
	conn.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, conn)
	return err
}

// FindByID looks a connection up by id.
func (r *ConnectionRepo) FindByID(ctx context.Context, id string) (*mentorship.Connection, error) {
	var conn mentorship.Connection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// FindByPair looks up the connection for one (mentor, mentee) pair.
func (r *ConnectionRepo) FindByPair(ctx context.Context, mentorID, menteeID string) (*mentorship.Connection, error) {
	var conn mentorship.Connection
	err := r.collection.FindOne(ctx, bson.M{"mentor": mentorID, "mentee": menteeID}).Decode(&conn)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// ListByUser returns connections where the user is mentor or mentee,
// newest first.
func (r *ConnectionRepo) ListByUser(ctx context.Context, userID string) ([]*mentorship.Connection, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"mentor": userID},
		bson.M{"mentee": userID},
	}}
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conns []*mentorship.Connection
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// UpdateStatus overwrites a connection's status.
func (r *ConnectionRepo) UpdateStatus(ctx context.Context, id string, status mentorship.ConnectionStatus) error {
	update := bson.M{"$set": bson.M{"status": status}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// CountByUser counts connections where the user is a party.
func (r *ConnectionRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"mentor": userID},
		bson.M{"mentee": userID},
	}}
	return r.collection.CountDocuments(ctx, filter)
}
