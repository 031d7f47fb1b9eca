package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"communityhub/internal/model/auth"
	"communityhub/internal/model/community"
	"communityhub/internal/model/mentorship"
)

// In-memory stores used across the service tests.

var errNotFound = errors.New("not found")

type fakeUserStore struct {
	users map[string]*auth.User
}

func newFakeUserStore(users ...*auth.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*auth.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *auth.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeUserStore) FindByUsernameOrEmail(_ context.Context, identifier string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, id string) error {
	if u, ok := s.users[id]; ok {
		now := time.Now()
		u.LastLogin = &now
		return nil
	}
	return errNotFound
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id, hash string) error {
	if u, ok := s.users[id]; ok {
		u.Password = hash
		return nil
	}
	return errNotFound
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id string, update *auth.ProfileUpdate) error {
	u, ok := s.users[id]
	if !ok {
		return errNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Location != nil {
		u.Location = *update.Location
	}
	if update.Skills != nil {
		u.Skills = update.Skills
	}
	if update.Interests != nil {
		u.Interests = update.Interests
	}
	if update.MentorshipAreas != nil {
		u.MentorshipAreas = update.MentorshipAreas
	}
	return nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, id string, role auth.UserRole, isMentor bool) error {
	if u, ok := s.users[id]; ok {
		u.Role = role
		u.IsMentor = isMentor
		return nil
	}
	return errNotFound
}

func (s *fakeUserStore) UpdateActive(_ context.Context, id string, active bool) error {
	if u, ok := s.users[id]; ok {
		u.IsActive = active
		return nil
	}
	return errNotFound
}

func (s *fakeUserStore) ListMentors(_ context.Context) ([]*auth.User, error) {
	var mentors []*auth.User
	for _, u := range s.users {
		if u.IsMentor && u.IsActive {
			mentors = append(mentors, u)
		}
	}
	sort.Slice(mentors, func(i, j int) bool { return mentors[i].Username < mentors[j].Username })
	return mentors, nil
}

func (s *fakeUserStore) ListAll(_ context.Context) ([]*auth.User, error) {
	var users []*auth.User
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

type fakeRefreshTokenStore struct {
	tokens map[string]*auth.RefreshToken
}

func newFakeRefreshTokenStore() *fakeRefreshTokenStore {
	return &fakeRefreshTokenStore{tokens: make(map[string]*auth.RefreshToken)}
}

func (s *fakeRefreshTokenStore) Create(_ context.Context, token *auth.RefreshToken) error {
	token.CreatedAt = time.Now()
	s.tokens[token.Token] = token
	return nil
}

func (s *fakeRefreshTokenStore) FindByToken(_ context.Context, token string) (*auth.RefreshToken, error) {
	if t, ok := s.tokens[token]; ok {
		return t, nil
	}
	return nil, errNotFound
}

func (s *fakeRefreshTokenStore) DeleteByToken(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func (s *fakeRefreshTokenStore) DeleteByUserID(_ context.Context, userID string) error {
	for key, t := range s.tokens {
		if t.UserID == userID {
			delete(s.tokens, key)
		}
	}
	return nil
}

type fakePostStore struct {
	posts map[string]*community.Post
	order []string
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[string]*community.Post)}
}

func (s *fakePostStore) Create(_ context.Context, post *community.Post) error {
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID] = post
	s.order = append(s.order, post.ID)
	return nil
}

func (s *fakePostStore) FindByID(_ context.Context, id string) (*community.Post, error) {
	if p, ok := s.posts[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (s *fakePostStore) ListByType(_ context.Context, postType community.PostType) ([]*community.Post, error) {
	var posts []*community.Post
	for i := len(s.order) - 1; i >= 0; i-- {
		if p := s.posts[s.order[i]]; p.Type == postType {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *fakePostStore) ListRecent(_ context.Context, excludeAuthor string, limit int64) ([]*community.Post, error) {
	var posts []*community.Post
	for i := len(s.order) - 1; i >= 0 && int64(len(posts)) < limit; i-- {
		if p := s.posts[s.order[i]]; p.Author != excludeAuthor {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *fakePostStore) Search(_ context.Context, query string, postType community.PostType) ([]*community.Post, error) {
	query = strings.ToLower(query)
	var posts []*community.Post
	for i := len(s.order) - 1; i >= 0; i-- {
		p := s.posts[s.order[i]]
		if postType != "" && p.Type != postType {
			continue
		}
		if strings.Contains(strings.ToLower(p.Content), query) ||
			strings.Contains(strings.ToLower(p.Author), query) ||
			strings.Contains(strings.ToLower(strings.Join(p.Tags, " ")), query) {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *fakePostStore) AppendReply(_ context.Context, id string, reply community.Reply) error {
	p, ok := s.posts[id]
	if !ok {
		return errNotFound
	}
	reply.CreatedAt = time.Now()
	p.Replies = append(p.Replies, reply)
	return nil
}

func (s *fakePostStore) SetLikes(_ context.Context, id string, likes int, likedBy []string) error {
	p, ok := s.posts[id]
	if !ok {
		return errNotFound
	}
	p.Likes = likes
	p.LikedBy = likedBy
	return nil
}

func (s *fakePostStore) CountByAuthor(_ context.Context, author string) (int64, error) {
	var n int64
	for _, p := range s.posts {
		if p.Author == author {
			n++
		}
	}
	return n, nil
}

func (s *fakePostStore) ListByAuthor(_ context.Context, author string) ([]*community.Post, error) {
	var posts []*community.Post
	for _, id := range s.order {
		if p := s.posts[id]; p.Author == author {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *fakePostStore) CountRepliesByAuthor(_ context.Context, author string) (int64, error) {
	var n int64
	for _, p := range s.posts {
		for _, r := range p.Replies {
			if r.Author == author {
				n++
			}
		}
	}
	return n, nil
}

type fakeConnectionStore struct {
	connections map[string]*mentorship.Connection
	order       []string
}

func newFakeConnectionStore() *fakeConnectionStore {
	return &fakeConnectionStore{connections: make(map[string]*mentorship.Connection)}
}

func (s *fakeConnectionStore) Create(_ context.Context, conn *mentorship.Connection) error {
	conn.CreatedAt = time.Now()
	s.connections[conn.ID] = conn
	s.order = append(s.order, conn.ID)
	return nil
}

func (s *fakeConnectionStore) FindByID(_ context.Context, id string) (*mentorship.Connection, error) {
	if c, ok := s.connections[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (s *fakeConnectionStore) FindByPair(_ context.Context, mentorID, menteeID string) (*mentorship.Connection, error) {
	for _, id := range s.order {
		c := s.connections[id]
		if c.Mentor == mentorID && c.Mentee == menteeID {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeConnectionStore) ListByUser(_ context.Context, userID string) ([]*mentorship.Connection, error) {
	var conns []*mentorship.Connection
	for i := len(s.order) - 1; i >= 0; i-- {
		if c := s.connections[s.order[i]]; c.IsParty(userID) {
			conns = append(conns, c)
		}
	}
	return conns, nil
}

func (s *fakeConnectionStore) UpdateStatus(_ context.Context, id string, status mentorship.ConnectionStatus) error {
	if c, ok := s.connections[id]; ok {
		c.Status = status
		return nil
	}
	return errNotFound
}

func (s *fakeConnectionStore) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, c := range s.connections {
		if c.IsParty(userID) {
			n++
		}
	}
	return n, nil
}

type fakeMessageStore struct {
	messages []*mentorship.Message
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{}
}

func (s *fakeMessageStore) Create(_ context.Context, msg *mentorship.Message) error {
	msg.CreatedAt = time.Now()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *fakeMessageStore) ListByConnection(_ context.Context, connectionID string) ([]*mentorship.Message, error) {
	var msgs []*mentorship.Message
	for _, m := range s.messages {
		if m.Connection == connectionID {
			msgs = append(msgs, m)
		}
	}
	return msgs, nil
}
