package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates all collection indexes at application startup.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	// users: username and email are globally unique
	userColl := db.Collection("users")
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "is_mentor", Value: 1}, bson.E{Key: "is_active", Value: 1}},
			Options: options.Index().SetName("idx_mentor_active"),
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}
	if err := CreateIndexes(ctx, userColl, userIndexes); err != nil {
		return err
	}

	// refresh_tokens: TTL cleanup of expired tokens
	refreshTokenColl := db.Collection("refresh_tokens")
	refreshTokenIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_user_id"),
		},
		{
			Keys:    bson.D{bson.E{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_token").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_expires_at").SetExpireAfterSeconds(0),
		},
	}
	if err := CreateIndexes(ctx, refreshTokenColl, refreshTokenIndexes); err != nil {
		return err
	}

	// posts: category listings sorted by recency, author stats
	postColl := db.Collection("posts")
	postIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "type", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_type_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "author", Value: 1}},
			Options: options.Index().SetName("idx_author"),
		},
		{
			Keys:    bson.D{bson.E{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_tags"),
		},
	}
	if err := CreateIndexes(ctx, postColl, postIndexes); err != nil {
		return err
	}

	// connections: pair lookups and per-user listings.
	// The (mentor, mentee) index is deliberately not unique: duplicate
	// prevention is check-then-create in the service, races accepted.
	connColl := db.Collection("connections")
	connIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "mentor", Value: 1}, bson.E{Key: "mentee", Value: 1}},
			Options: options.Index().SetName("idx_pair"),
		},
		{
			Keys:    bson.D{bson.E{Key: "mentee", Value: 1}},
			Options: options.Index().SetName("idx_mentee"),
		},
	}
	if err := CreateIndexes(ctx, connColl, connIndexes); err != nil {
		return err
	}

	// messages: history reads in ascending creation order
	msgColl := db.Collection("messages")
	msgIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "connection", Value: 1}, bson.E{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_connection_created"),
		},
	}
	return CreateIndexes(ctx, msgColl, msgIndexes)
}
