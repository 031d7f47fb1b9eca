package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"communityhub/internal/model/auth"
	"communityhub/internal/pkg/cache"
)

// ErrAssistBusy indicates an upstream quota or rate limit. Handlers map
// it to 429 so clients can back off.
var ErrAssistBusy = errors.New("assistant is temporarily unavailable due to high demand")

const (
	offlineReply = "I am currently offline. Please try again later."
	troubleReply = "I'm sorry, I'm having trouble responding right now. Please try again later."

	recommendationPostLimit = 50
)

// ChatGenerator is the slice of the eino ChatModel the assistant uses.
type ChatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// ChatTurn is one prior exchange in a chatbot conversation.
type ChatTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// Recommendation is one suggested post for the user's feed.
type Recommendation struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Link   string `json:"link"`
}

// MentorMatch pairs a mentor with the reason they fit the user.
type MentorMatch struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// AssistService wraps the chat model behind the community assistant
// features. A nil chat model means offline mode: every feature degrades
// to its canned response instead of failing.
type AssistService struct {
	chatModel ChatGenerator
	users     UserStore
	posts     PostStore
	cache     *cache.RedisCache
}

// NewAssistService creates the assistant service. chatModel and redisCache
// may be nil.
func NewAssistService(chatModel ChatGenerator, users UserStore, posts PostStore, redisCache *cache.RedisCache) *AssistService {
	return &AssistService{
		chatModel: chatModel,
		users:     users,
		posts:     posts,
		cache:     redisCache,
	}
}

// Available reports whether a chat model is configured.
func (s *AssistService) Available() bool {
	return s.chatModel != nil
}

// ChatReply answers one chatbot message with the user's profile as
// context. Upstream quota errors surface as ErrAssistBusy; other model
// failures degrade to a canned apology.
func (s *AssistService) ChatReply(ctx context.Context, user *auth.User, message string, history []ChatTurn) (string, error) {
	if !s.Available() {
		return offlineReply, nil
	}

	systemPrompt := fmt.Sprintf(`You are a friendly and helpful AI assistant for a community platform. Your name is 'CommuniBot'.
The user you are talking to is %s. Their role is %s.
Their interests include: %s.
Their skills include: %s.
Be concise and helpful. Ask clarifying questions if needed. Do not invent features that don't exist.
The platform has: Discussions, Q&A, Milestones, and Mentorship sections.
You can help users find information, suggest connections, or answer questions about the platform.`,
		user.Username, user.Role, joinOr(user.Interests, "not specified"), joinOr(user.Skills, "not specified"))

	messages := []*schema.Message{schema.SystemMessage(systemPrompt)}
	for _, turn := range history {
		if turn.Role == "assistant" {
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		} else {
			messages = append(messages, schema.UserMessage(turn.Content))
		}
	}
	messages = append(messages, schema.UserMessage(message))

	resp, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		if isQuotaError(err) {
			return "", ErrAssistBusy
		}
		log.Error().Err(err).Msg("chatbot generation failed")
		return troubleReply, nil
	}

	return strings.TrimSpace(resp.Content), nil
}

// Recommendations suggests recent posts matching the user's profile.
// Results are cached per user; any model failure degrades to the static
// starter suggestions.
func (s *AssistService) Recommendations(ctx context.Context, user *auth.User) ([]Recommendation, error) {
	if s.cache != nil {
		var cached []Recommendation
		if err := s.cache.Get(ctx, cache.RecommendationCacheKey(user.ID), &cached); err == nil {
			return cached, nil
		}
	}

	if !s.Available() {
		return fallbackRecommendations(), nil
	}

	posts, err := s.posts.ListRecent(ctx, user.Username, recommendationPostLimit)
	if err != nil {
		return nil, err
	}

	type postSummary struct {
		ID      string `json:"id"`
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	summaries := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, postSummary{
			ID:      p.ID,
			Content: truncate(p.Content, 150),
			Author:  p.Author,
		})
	}
	summaryJSON, _ := json.Marshal(summaries)

	prompt := fmt.Sprintf(`Based on the profile of user %q, recommend 3-5 relevant posts from the list below.
The user's interests are: %s.
The user's skills are: %s.

Available Posts:
%s

Respond with a JSON array of objects, where each object has:
- "id": The ID of the recommended post.
- "title": A short, catchy title for the recommendation card.
- "reason": A brief, one-sentence explanation of why this post is relevant for the user.
- "link": The link should be "#" for now.`,
		user.Username, joinOr(user.Interests, "General"), joinOr(user.Skills, "General"), summaryJSON)

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		if isQuotaError(err) {
			return fallbackRecommendations(), nil
		}
		log.Error().Err(err).Msg("recommendation generation failed")
		return fallbackRecommendations(), nil
	}

	var recs []Recommendation
	if err := json.Unmarshal([]byte(extractJSONArray(resp.Content)), &recs); err != nil || len(recs) == 0 {
		log.Warn().Msg("unparseable recommendation response, using fallback")
		return fallbackRecommendations(), nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.RecommendationCacheKey(user.ID), recs, cache.RecommendationCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache recommendations")
		}
	}

	return recs, nil
}

// MatchMentors ranks active mentors for the user. Returns the matches
// and the total mentor pool size. Offline mode returns no matches.
func (s *AssistService) MatchMentors(ctx context.Context, user *auth.User) ([]MentorMatch, int, error) {
	mentors, err := s.users.ListMentors(ctx)
	if err != nil {
		return nil, 0, err
	}

	if !s.Available() || len(mentors) == 0 {
		return []MentorMatch{}, len(mentors), nil
	}

	var sb strings.Builder
	for _, m := range mentors {
		fmt.Fprintf(&sb, "- ID: %s, Skills: %s, Expertise: %s\n",
			m.ID, strings.Join(m.Skills, ", "), strings.Join(m.MentorshipAreas, ", "))
	}

	prompt := fmt.Sprintf(`User profile:
- Interests: %s
- Skills: %s
- Bio: %s

Available mentors:
%s
Match the user with the top 3 most suitable mentors. Return a JSON array of objects, each with "id" (the mentor ID) and "reason" (a brief reason for the match).`,
		joinOr(user.Interests, "None"), joinOr(user.Skills, "None"), stringOr(user.Bio, "None"), sb.String())

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		log.Error().Err(err).Msg("mentor matching failed")
		return []MentorMatch{}, len(mentors), nil
	}

	var matches []MentorMatch
	if err := json.Unmarshal([]byte(extractJSONArray(resp.Content)), &matches); err != nil {
		return []MentorMatch{}, len(mentors), nil
	}

	return matches, len(mentors), nil
}

// GenerateTags derives 3-5 lowercase tags from post content.
func (s *AssistService) GenerateTags(ctx context.Context, content string) ([]string, error) {
	if !s.Available() {
		return []string{"general"}, nil
	}

	prompt := fmt.Sprintf(`Generate 3-5 relevant tags for the following post content.
The tags should be single words or short phrases, lowercase.
Return the tags as a JSON array of strings.

Post content: %q

Example response:
["javascript", "web-development", "api", "question"]`, content)

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		log.Error().Err(err).Msg("tag generation failed")
		return []string{"general", "discussion"}, nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(extractJSONArray(resp.Content)), &tags); err != nil || len(tags) == 0 {
		return []string{"general", "discussion"}, nil
	}

	return tags, nil
}

// Ping exercises the chat model with a trivial prompt for the health
// endpoint.
func (s *AssistService) Ping(ctx context.Context) (string, error) {
	if !s.Available() {
		return "", errors.New("assistant is not configured")
	}

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage("Hello, are you working? Reply in one short sentence."),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

func fallbackRecommendations() []Recommendation {
	return []Recommendation{
		{ID: "1", Title: "Explore Discussions", Reason: "Discover what the community is talking about.", Link: "#"},
		{ID: "2", Title: "Find a Mentor", Reason: "Connect with experienced members to guide you.", Link: "#"},
		{ID: "3", Title: "Ask a Question", Reason: "Get answers to your questions from the community.", Link: "#"},
	}
}

// extractJSONArray pulls the first JSON array out of a model response,
// tolerating markdown code fences and prose around it.
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429")
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
