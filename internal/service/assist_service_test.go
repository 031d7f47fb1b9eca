package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"

	"communityhub/internal/model/auth"
	"communityhub/internal/model/community"
)

type fakeChatGenerator struct {
	reply string
	err   error

	lastMessages []*schema.Message
}

func (g *fakeChatGenerator) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	g.lastMessages = input
	if g.err != nil {
		return nil, g.err
	}
	return schema.AssistantMessage(g.reply, nil), nil
}

func TestChatReply(t *testing.T) {
	Convey("Given an assistant with a chat model", t, func() {
		gen := &fakeChatGenerator{reply: "  Hello alice!  "}
		users := newFakeUserStore()
		posts := newFakePostStore()
		svc := NewAssistService(gen, users, posts, nil)
		ctx := context.Background()

		user := &auth.User{ID: "u1", Username: "alice", Role: auth.RoleUser, Interests: []string{"go"}}

		Convey("The reply is trimmed and the profile lands in the system prompt", func() {
			reply, err := svc.ChatReply(ctx, user, "hi", nil)
			So(err, ShouldBeNil)
			So(reply, ShouldEqual, "Hello alice!")
			So(len(gen.lastMessages), ShouldEqual, 2)
			So(gen.lastMessages[0].Role, ShouldEqual, schema.System)
			So(gen.lastMessages[0].Content, ShouldContainSubstring, "alice")
			So(gen.lastMessages[0].Content, ShouldContainSubstring, "go")
		})

		Convey("History turns are replayed before the new message", func() {
			history := []ChatTurn{
				{Role: "user", Content: "earlier question"},
				{Role: "assistant", Content: "earlier answer"},
			}
			_, err := svc.ChatReply(ctx, user, "follow-up", history)
			So(err, ShouldBeNil)
			So(len(gen.lastMessages), ShouldEqual, 4)
			So(gen.lastMessages[1].Content, ShouldEqual, "earlier question")
			So(gen.lastMessages[2].Role, ShouldEqual, schema.Assistant)
			So(gen.lastMessages[3].Content, ShouldEqual, "follow-up")
		})

		Convey("Quota errors surface as ErrAssistBusy", func() {
			gen.err = errors.New("upstream: 429 too many requests")
			_, err := svc.ChatReply(ctx, user, "hi", nil)
			So(err, ShouldEqual, ErrAssistBusy)
		})

		Convey("Other model errors degrade to a canned apology", func() {
			gen.err = errors.New("connection reset")
			reply, err := svc.ChatReply(ctx, user, "hi", nil)
			So(err, ShouldBeNil)
			So(reply, ShouldContainSubstring, "trouble responding")
		})

		Convey("Offline mode answers without a model", func() {
			offline := NewAssistService(nil, users, posts, nil)
			reply, err := offline.ChatReply(ctx, user, "hi", nil)
			So(err, ShouldBeNil)
			So(reply, ShouldContainSubstring, "offline")
		})
	})
}

func TestRecommendations(t *testing.T) {
	Convey("Given an assistant and some posts", t, func() {
		users := newFakeUserStore()
		posts := newFakePostStore()
		ctx := context.Background()

		So(posts.Create(ctx, &community.Post{ID: "p1", Author: "bob", Content: "go concurrency patterns", Type: community.PostTypeDiscussions}), ShouldBeNil)
		user := &auth.User{ID: "u1", Username: "alice", Interests: []string{"go"}}

		Convey("A parseable model response is returned as-is", func() {
			gen := &fakeChatGenerator{reply: `Here you go:
[{"id":"p1","title":"Concurrency Deep Dive","reason":"Matches your interest in go.","link":"#"}]`}
			svc := NewAssistService(gen, users, posts, nil)

			recs, err := svc.Recommendations(ctx, user)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 1)
			So(recs[0].ID, ShouldEqual, "p1")
			So(recs[0].Link, ShouldEqual, "#")
		})

		Convey("An unparseable response falls back to the starter suggestions", func() {
			gen := &fakeChatGenerator{reply: "sorry, no json today"}
			svc := NewAssistService(gen, users, posts, nil)

			recs, err := svc.Recommendations(ctx, user)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 3)
			So(recs[0].Title, ShouldEqual, "Explore Discussions")
		})

		Convey("Model errors fall back instead of failing", func() {
			gen := &fakeChatGenerator{err: errors.New("quota exceeded")}
			svc := NewAssistService(gen, users, posts, nil)

			recs, err := svc.Recommendations(ctx, user)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 3)
		})

		Convey("Offline mode returns the starter suggestions", func() {
			svc := NewAssistService(nil, users, posts, nil)
			recs, err := svc.Recommendations(ctx, user)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 3)
		})
	})
}

func TestMatchMentors(t *testing.T) {
	Convey("Given mentors and an assistant", t, func() {
		users := newFakeUserStore(
			&auth.User{ID: "m1", Username: "david", IsMentor: true, IsActive: true, Skills: []string{"go"}},
			&auth.User{ID: "m2", Username: "erin", IsMentor: true, IsActive: true, Skills: []string{"rust"}},
		)
		posts := newFakePostStore()
		ctx := context.Background()
		user := &auth.User{ID: "u1", Username: "alice", Interests: []string{"go"}}

		Convey("Matches are parsed with the pool size", func() {
			gen := &fakeChatGenerator{reply: `[{"id":"m1","reason":"Shares your go focus."}]`}
			svc := NewAssistService(gen, users, posts, nil)

			matches, total, err := svc.MatchMentors(ctx, user)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 2)
			So(len(matches), ShouldEqual, 1)
			So(matches[0].ID, ShouldEqual, "m1")
		})

		Convey("Offline mode returns an empty match list with the pool size", func() {
			svc := NewAssistService(nil, users, posts, nil)
			matches, total, err := svc.MatchMentors(ctx, user)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 2)
			So(matches, ShouldBeEmpty)
		})
	})
}

func TestGenerateTags(t *testing.T) {
	Convey("Given an assistant", t, func() {
		users := newFakeUserStore()
		posts := newFakePostStore()
		ctx := context.Background()

		Convey("Tags are parsed from the model response", func() {
			gen := &fakeChatGenerator{reply: "```json\n[\"go\", \"concurrency\"]\n```"}
			svc := NewAssistService(gen, users, posts, nil)

			tags, err := svc.GenerateTags(ctx, "channels and goroutines")
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"go", "concurrency"})
		})

		Convey("Model failures fall back to generic tags", func() {
			gen := &fakeChatGenerator{err: errors.New("boom")}
			svc := NewAssistService(gen, users, posts, nil)

			tags, err := svc.GenerateTags(ctx, "whatever")
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"general", "discussion"})
		})

		Convey("Offline mode tags everything general", func() {
			svc := NewAssistService(nil, users, posts, nil)
			tags, err := svc.GenerateTags(ctx, "whatever")
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"general"})
		})
	})
}

func TestExtractJSONArray(t *testing.T) {
	Convey("extractJSONArray pulls the array out of surrounding noise", t, func() {
		So(extractJSONArray(`[1,2]`), ShouldEqual, `[1,2]`)
		So(extractJSONArray("```json\n[1,2]\n```"), ShouldEqual, `[1,2]`)
		So(extractJSONArray(`Sure! Here: [{"id":"x"}] Hope that helps.`), ShouldEqual, `[{"id":"x"}]`)
		So(extractJSONArray(`no array here`), ShouldEqual, `no array here`)
	})
}
