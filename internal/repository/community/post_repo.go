package community

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"communityhub/internal/model/community"
)

// PostRepo is the posts collection repository.
type PostRepo struct {
	collection *mongo.Collection
}

// NewPostRepo creates a post repository.
func NewPostRepo(db *mongo.Database) *PostRepo {
	return &PostRepo{
		collection: db.Collection("posts"),
	}
}

// Create inserts a post.
func (r *PostRepo) Create(ctx context.Context, post *community.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// FindByID looks a post up by id.
func (r *PostRepo) FindByID(ctx context.Context, id string) (*community.Post, error) {
	var post community.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByType returns posts in one category, newest first.
func (r *PostRepo) ListByType(ctx context.Context, postType community.PostType) ([]*community.Post, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"type": postType}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*community.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListRecent returns the newest posts, excluding one author if given.
func (r *PostRepo) ListRecent(ctx context.Context, excludeAuthor string, limit int64) ([]*community.Post, error) {
	filter := bson.M{}
	if excludeAuthor != "" {
		filter["author"] = bson.M{"$ne": excludeAuthor}
	}
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*community.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Search matches content, author or tags case-insensitively, optionally
// restricted to one category.
func (r *PostRepo) Search(ctx context.Context, query string, postType community.PostType) ([]*community.Post, error) {
	filter := bson.M{}
	if query != "" {
		regex := bson.M{"$regex": query, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"content": regex},
			bson.M{"author": regex},
			bson.M{"tags": regex},
		}
	}
	if postType != "" {
		filter["type"] = postType
	}

	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*community.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AppendReply pushes a reply onto a post.
func (r *PostRepo) AppendReply(ctx context.Context, id string, reply community.Reply) error {
	update := bson.M{
		"$push": bson.M{"replies": reply},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// SetLikes replaces the like counter and liker set together, keeping the
// likes == len(liked_by) invariant in one write.
func (r *PostRepo) SetLikes(ctx context.Context, id string, likes int, likedBy []string) error {
	update := bson.M{
		"$set": bson.M{
			"likes":      likes,
			"liked_by":   likedBy,
			"updated_at": time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// CountByAuthor counts posts written by one author.
func (r *PostRepo) CountByAuthor(ctx context.Context, author string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"author": author})
}

// ListByAuthor returns all posts written by one author.
func (r *PostRepo) ListByAuthor(ctx context.Context, author string) ([]*community.Post, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"author": author})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*community.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountRepliesByAuthor counts embedded replies written by one author
// across all posts.
func (r *PostRepo) CountRepliesByAuthor(ctx context.Context, author string) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{bson.E{Key: "$unwind", Value: "$replies"}},
		bson.D{bson.E{Key: "$match", Value: bson.M{"replies.author": author}}},
		bson.D{bson.E{Key: "$count", Value: "count"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Count, nil
}
