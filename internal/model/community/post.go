package community

import (
	"time"
)

// PostType is the post category.
type PostType string

const (
	PostTypeDiscussions PostType = "discussions"
	PostTypeMilestones  PostType = "milestones"
	PostTypeQAndA       PostType = "q-and-a"
)

// IsValid checks that the category is one of the known categories.
func (t PostType) IsValid() bool {
	return t == PostTypeDiscussions || t == PostTypeMilestones || t == PostTypeQAndA
}

// Reply is embedded in its parent post, ordered by append.
type Reply struct {
	Author    string    `bson:"author" json:"author"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Post is a community post. Authors are referenced by username.
// Invariant: Likes == len(LikedBy) at all times; the like operation is a
// toggle keyed by the liker's username.
type Post struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Author    string    `bson:"author" json:"author"`
	Content   string    `bson:"content" json:"content"`
	Type      PostType  `bson:"type" json:"type"`
	Replies   []Reply   `bson:"replies" json:"replies"`
	Likes     int       `bson:"likes" json:"likes"`
	LikedBy   []string  `bson:"liked_by" json:"likedBy"`
	Tags      []string  `bson:"tags" json:"tags"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// LikedByUser reports whether username is in the liker set.
func (p *Post) LikedByUser(username string) bool {
	for _, u := range p.LikedBy {
		if u == username {
			return true
		}
	}
	return false
}
