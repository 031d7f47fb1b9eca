package service

import (
	"context"

	"communityhub/internal/model/auth"
	"communityhub/internal/model/community"
	"communityhub/internal/model/mentorship"
)

// Store interfaces consumed by the services. The Mongo repositories under
// internal/repository satisfy them; tests substitute in-memory fakes.

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *auth.User) error
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByUsername(ctx context.Context, username string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*auth.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdateProfile(ctx context.Context, id string, update *auth.ProfileUpdate) error
	UpdateRole(ctx context.Context, id string, role auth.UserRole, isMentor bool) error
	UpdateActive(ctx context.Context, id string, active bool) error
	ListMentors(ctx context.Context) ([]*auth.User, error)
	ListAll(ctx context.Context) ([]*auth.User, error)
}

// RefreshTokenStore persists refresh tokens.
type RefreshTokenStore interface {
	Create(ctx context.Context, token *auth.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*auth.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// PostStore persists community posts.
type PostStore interface {
	Create(ctx context.Context, post *community.Post) error
	FindByID(ctx context.Context, id string) (*community.Post, error)
	ListByType(ctx context.Context, postType community.PostType) ([]*community.Post, error)
	ListRecent(ctx context.Context, excludeAuthor string, limit int64) ([]*community.Post, error)
	Search(ctx context.Context, query string, postType community.PostType) ([]*community.Post, error)
	AppendReply(ctx context.Context, id string, reply community.Reply) error
	SetLikes(ctx context.Context, id string, likes int, likedBy []string) error
	CountByAuthor(ctx context.Context, author string) (int64, error)
	ListByAuthor(ctx context.Context, author string) ([]*community.Post, error)
	CountRepliesByAuthor(ctx context.Context, author string) (int64, error)
}

// ConnectionStore persists mentorship connections.
type ConnectionStore interface {
	Create(ctx context.Context, conn *mentorship.Connection) error
	FindByID(ctx context.Context, id string) (*mentorship.Connection, error)
	FindByPair(ctx context.Context, mentorID, menteeID string) (*mentorship.Connection, error)
	ListByUser(ctx context.Context, userID string) ([]*mentorship.Connection, error)
	UpdateStatus(ctx context.Context, id string, status mentorship.ConnectionStatus) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// MessageStore persists private messages.
type MessageStore interface {
	Create(ctx context.Context, msg *mentorship.Message) error
	ListByConnection(ctx context.Context, connectionID string) ([]*mentorship.Message, error)
}
