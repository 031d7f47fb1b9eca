package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"communityhub/internal/model/community"
	"communityhub/internal/pkg/id"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidPostType = errors.New("invalid post type")
)

// CommunityService implements post, reply and like operations.
type CommunityService struct {
	posts PostStore
}

// NewCommunityService creates the community service.
func NewCommunityService(posts PostStore) *CommunityService {
	return &CommunityService{posts: posts}
}

// CreatePost creates a post authored by the given username.
func (s *CommunityService) CreatePost(ctx context.Context, author, content string, postType community.PostType, tags []string) (*community.Post, error) {
	if !postType.IsValid() {
		return nil, ErrInvalidPostType
	}

	if tags == nil {
		tags = []string{}
	}

	post := &community.Post{
		ID:      id.New(),
		Author:  author,
		Content: content,
		Type:    postType,
		Replies: []community.Reply{},
		LikedBy: []string{},
		Tags:    tags,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		log.Error().Err(err).Msg("failed to create post")
		return nil, errors.New("failed to create post")
	}

	return post, nil
}

// ListPosts returns one category, newest first.
func (s *CommunityService) ListPosts(ctx context.Context, postType community.PostType) ([]*community.Post, error) {
	if !postType.IsValid() {
		return nil, ErrInvalidPostType
	}
	return s.posts.ListByType(ctx, postType)
}

// AddReply appends a reply to a post and returns the updated post.
func (s *CommunityService) AddReply(ctx context.Context, postID, author, content string) (*community.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	reply := community.Reply{
		Author:  author,
		Content: content,
	}
	if err := s.posts.AppendReply(ctx, post.ID, reply); err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to append reply")
		return nil, errors.New("failed to add reply")
	}

	return s.posts.FindByID(ctx, postID)
}

// ToggleLike likes the post if username is not in the liker set, unlikes
// it otherwise. Counter and set are written together so that
// likes == len(likedBy) holds after every toggle.
func (s *CommunityService) ToggleLike(ctx context.Context, postID, username string) (*community.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	if post.LikedByUser(username) {
		likedBy := make([]string, 0, len(post.LikedBy)-1)
		for _, u := range post.LikedBy {
			if u != username {
				likedBy = append(likedBy, u)
			}
		}
		post.LikedBy = likedBy
	} else {
		post.LikedBy = append(post.LikedBy, username)
	}
	post.Likes = len(post.LikedBy)

	if err := s.posts.SetLikes(ctx, post.ID, post.Likes, post.LikedBy); err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to update likes")
		return nil, errors.New("failed to update likes")
	}

	return post, nil
}

// Search matches posts by content, author or tags. An empty type searches
// all categories.
func (s *CommunityService) Search(ctx context.Context, query string, postType community.PostType) ([]*community.Post, error) {
	if postType != "" && !postType.IsValid() {
		return nil, ErrInvalidPostType
	}
	return s.posts.Search(ctx, query, postType)
}
