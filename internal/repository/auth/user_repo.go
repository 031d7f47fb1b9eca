package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"communityhub/internal/model/auth"
)

// UserRepo is the users collection repository.
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

// Create inserts a user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID looks a user up by id.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername looks a user up by username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail looks a user up by email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail matches login identifiers, which may be either.
func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*auth.User, error) {
	var user auth.User
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies an update document, refreshing updated_at.
func (r *UserRepo) Update(ctx context.Context, id string, update bson.M) error {
	if setDoc, ok := update["$set"].(bson.M); ok {
		setDoc["updated_at"] = time.Now()
	} else {
		update["$set"] = bson.M{"updated_at": time.Now()}
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdatePassword replaces the stored credential hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.Update(ctx, id, bson.M{"$set": bson.M{"password": hash}})
}

// UpdateRole changes a user's role and re-derives the mentor flag.
func (r *UserRepo) UpdateRole(ctx context.Context, id string, role auth.UserRole, isMentor bool) error {
	return r.Update(ctx, id, bson.M{"$set": bson.M{"role": role, "is_mentor": isMentor}})
}

// UpdateActive flips the account's active flag.
func (r *UserRepo) UpdateActive(ctx context.Context, id string, active bool) error {
	return r.Update(ctx, id, bson.M{"$set": bson.M{"is_active": active}})
}

// UpdateProfile applies the provided (non-nil) profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, update *auth.ProfileUpdate) error {
	set := bson.M{}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Skills != nil {
		set["skills"] = update.Skills
	}
	if update.Interests != nil {
		set["interests"] = update.Interests
	}
	if update.MentorshipAreas != nil {
		set["mentorship_areas"] = update.MentorshipAreas
	}
	if len(set) == 0 {
		return nil
	}
	return r.Update(ctx, id, bson.M{"$set": set})
}

// ListAll returns every user, newest first.
func (r *UserRepo) ListAll(ctx context.Context) ([]*auth.User, error) {
	return r.List(ctx, bson.M{})
}

// UpdateLastLogin records a successful login.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"last_login": now,
			"updated_at": now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// ListMentors returns active users with the mentor capability.
func (r *UserRepo) ListMentors(ctx context.Context) ([]*auth.User, error) {
	filter := bson.M{"is_mentor": true, "is_active": true}
	opts := options.Find().SetSort(bson.D{bson.E{Key: "username", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mentors []*auth.User
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, err
	}
	return mentors, nil
}

// List returns users matching filter, newest first.
func (r *UserRepo) List(ctx context.Context, filter bson.M) ([]*auth.User, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*auth.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count counts users matching filter.
func (r *UserRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}
