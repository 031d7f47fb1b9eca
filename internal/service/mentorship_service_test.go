package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"communityhub/internal/model/auth"
	"communityhub/internal/model/mentorship"
)

func newMentorshipFixture() (*MentorshipService, *fakeUserStore, *fakeConnectionStore, *fakeMessageStore) {
	users := newFakeUserStore(
		&auth.User{ID: "u-alice", Username: "alice", Role: auth.RoleUser, IsActive: true},
		&auth.User{ID: "u-bob", Username: "bob", Role: auth.RoleUser, IsActive: true},
		&auth.User{ID: "m-david", Username: "david", Role: auth.RoleMentor, IsMentor: true, IsActive: true},
		&auth.User{ID: "m-erin", Username: "erin", Role: auth.RoleMentor, IsMentor: true, IsActive: false},
	)
	connections := newFakeConnectionStore()
	messages := newFakeMessageStore()
	return NewMentorshipService(users, connections, messages), users, connections, messages
}

func TestRequestConnection(t *testing.T) {
	Convey("Given a mentorship service", t, func() {
		svc, _, connections, _ := newMentorshipFixture()
		ctx := context.Background()

		Convey("A user can request a connection to an active mentor", func() {
			conn, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "m-david", "please mentor me")
			So(err, ShouldBeNil)
			So(conn.Status, ShouldEqual, mentorship.StatusPending)
			So(conn.Mentor, ShouldEqual, "m-david")
			So(conn.Mentee, ShouldEqual, "u-alice")
			So(conn.Message, ShouldEqual, "please mentor me")
			So(conn.MentorName, ShouldEqual, "david")
			So(conn.MenteeName, ShouldEqual, "alice")
		})

		Convey("Re-requesting the same pair returns the existing connection", func() {
			first, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "m-david", "first")
			So(err, ShouldBeNil)

			second, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "m-david", "second")
			So(err, ShouldBeNil)
			So(second.ID, ShouldEqual, first.ID)
			So(second.Message, ShouldEqual, "first")
			So(len(connections.connections), ShouldEqual, 1)
		})

		Convey("Mentors cannot initiate requests", func() {
			_, err := svc.RequestConnection(ctx, "m-david", auth.RoleMentor, "m-david", "")
			So(err, ShouldEqual, ErrOnlyUsersMayRequest)
		})

		Convey("Admins cannot initiate requests either", func() {
			_, err := svc.RequestConnection(ctx, "a-root", auth.RoleAdmin, "m-david", "")
			So(err, ShouldEqual, ErrOnlyUsersMayRequest)
		})

		Convey("Requesting an unknown mentor fails", func() {
			_, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "nobody", "")
			So(err, ShouldEqual, ErrMentorNotFound)
		})

		Convey("Requesting a deactivated mentor fails", func() {
			_, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "m-erin", "")
			So(err, ShouldEqual, ErrMentorNotFound)
		})

		Convey("Requesting a plain user as mentor fails", func() {
			_, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "u-bob", "")
			So(err, ShouldEqual, ErrMentorNotFound)
		})
	})
}

func TestUpdateStatus(t *testing.T) {
	Convey("Given a pending connection between alice and david", t, func() {
		svc, _, _, _ := newMentorshipFixture()
		ctx := context.Background()

		conn, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "m-david", "")
		So(err, ShouldBeNil)

		Convey("The mentor can accept", func() {
			updated, err := svc.UpdateStatus(ctx, conn.ID, "m-david", mentorship.StatusAccepted)
			So(err, ShouldBeNil)
			So(updated.Status, ShouldEqual, mentorship.StatusAccepted)
		})

		Convey("The mentee cannot accept their own request", func() {
			_, err := svc.UpdateStatus(ctx, conn.ID, "u-alice", mentorship.StatusAccepted)
			So(err, ShouldEqual, ErrOnlyMentorMayAccept)
		})

		Convey("The mentee can decline to withdraw the request", func() {
			updated, err := svc.UpdateStatus(ctx, conn.ID, "u-alice", mentorship.StatusDeclined)
			So(err, ShouldBeNil)
			So(updated.Status, ShouldEqual, mentorship.StatusDeclined)
		})

		Convey("The mentor can decline", func() {
			updated, err := svc.UpdateStatus(ctx, conn.ID, "m-david", mentorship.StatusDeclined)
			So(err, ShouldBeNil)
			So(updated.Status, ShouldEqual, mentorship.StatusDeclined)
		})

		Convey("A third party cannot resolve the connection", func() {
			_, err := svc.UpdateStatus(ctx, conn.ID, "u-bob", mentorship.StatusAccepted)
			So(err, ShouldEqual, ErrNotParty)
		})

		Convey("Terminal states are immutable", func() {
			_, err := svc.UpdateStatus(ctx, conn.ID, "m-david", mentorship.StatusAccepted)
			So(err, ShouldBeNil)

			_, err = svc.UpdateStatus(ctx, conn.ID, "m-david", mentorship.StatusDeclined)
			So(err, ShouldEqual, ErrConnectionResolved)

			_, err = svc.UpdateStatus(ctx, conn.ID, "u-alice", mentorship.StatusDeclined)
			So(err, ShouldEqual, ErrConnectionResolved)
		})

		Convey("Pending is not a legal target state", func() {
			_, err := svc.UpdateStatus(ctx, conn.ID, "m-david", mentorship.StatusPending)
			So(err, ShouldEqual, ErrInvalidStatus)
		})

		Convey("Unknown connections report not found", func() {
			_, err := svc.UpdateStatus(ctx, "missing", "m-david", mentorship.StatusAccepted)
			So(err, ShouldEqual, ErrConnectionNotFound)
		})
	})
}

func TestSendMessage(t *testing.T) {
	Convey("Given connections in various states", t, func() {
		svc, _, _, messages := newMentorshipFixture()
		ctx := context.Background()

		pending, err := svc.RequestConnection(ctx, "u-bob", auth.RoleUser, "m-david", "")
		So(err, ShouldBeNil)

		accepted, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "m-david", "")
		So(err, ShouldBeNil)
		_, err = svc.UpdateStatus(ctx, accepted.ID, "m-david", mentorship.StatusAccepted)
		So(err, ShouldBeNil)

		Convey("A party can message inside an accepted connection", func() {
			msg, err := svc.SendMessage(ctx, accepted.ID, "u-alice", "hello")
			So(err, ShouldBeNil)
			So(msg.Sender, ShouldEqual, "u-alice")
			So(msg.Receiver, ShouldEqual, "m-david")
			So(msg.Content, ShouldEqual, "hello")
			So(msg.SenderName, ShouldEqual, "alice")
			So(len(messages.messages), ShouldEqual, 1)
		})

		Convey("The receiver is always the other party", func() {
			msg, err := svc.SendMessage(ctx, accepted.ID, "m-david", "hi alice")
			So(err, ShouldBeNil)
			So(msg.Receiver, ShouldEqual, "u-alice")
		})

		Convey("Messaging a pending connection fails", func() {
			_, err := svc.SendMessage(ctx, pending.ID, "u-bob", "too early")
			So(err, ShouldEqual, ErrConnectionNotActive)
			So(len(messages.messages), ShouldEqual, 0)
		})

		Convey("Messaging a declined connection fails", func() {
			_, err := svc.UpdateStatus(ctx, pending.ID, "m-david", mentorship.StatusDeclined)
			So(err, ShouldBeNil)

			_, err = svc.SendMessage(ctx, pending.ID, "u-bob", "still there?")
			So(err, ShouldEqual, ErrConnectionNotActive)
		})

		Convey("A non-party cannot message even an accepted connection", func() {
			_, err := svc.SendMessage(ctx, accepted.ID, "u-bob", "let me in")
			So(err, ShouldEqual, ErrNotParty)
		})

		Convey("Unknown connections report not found", func() {
			_, err := svc.SendMessage(ctx, "missing", "u-alice", "hello")
			So(err, ShouldEqual, ErrConnectionNotFound)
		})
	})
}

func TestListMessagesAndConnections(t *testing.T) {
	Convey("Given an accepted connection with history", t, func() {
		svc, _, _, _ := newMentorshipFixture()
		ctx := context.Background()

		conn, err := svc.RequestConnection(ctx, "u-alice", auth.RoleUser, "m-david", "")
		So(err, ShouldBeNil)
		_, err = svc.UpdateStatus(ctx, conn.ID, "m-david", mentorship.StatusAccepted)
		So(err, ShouldBeNil)

		_, err = svc.SendMessage(ctx, conn.ID, "u-alice", "first")
		So(err, ShouldBeNil)
		_, err = svc.SendMessage(ctx, conn.ID, "m-david", "second")
		So(err, ShouldBeNil)

		Convey("Parties read the history in order", func() {
			msgs, err := svc.ListMessages(ctx, conn.ID, "u-alice")
			So(err, ShouldBeNil)
			So(len(msgs), ShouldEqual, 2)
			So(msgs[0].Content, ShouldEqual, "first")
			So(msgs[1].Content, ShouldEqual, "second")
		})

		Convey("Non-parties cannot read the history", func() {
			_, err := svc.ListMessages(ctx, conn.ID, "u-bob")
			So(err, ShouldEqual, ErrNotParty)
		})

		Convey("Connection lists resolve peer names", func() {
			conns, err := svc.ListConnections(ctx, "m-david")
			So(err, ShouldBeNil)
			So(len(conns), ShouldEqual, 1)
			So(conns[0].MentorName, ShouldEqual, "david")
			So(conns[0].MenteeName, ShouldEqual, "alice")
		})

		Convey("VerifyParty admits parties and rejects others", func() {
			So(svc.VerifyParty(ctx, conn.ID, "u-alice"), ShouldBeNil)
			So(svc.VerifyParty(ctx, conn.ID, "m-david"), ShouldBeNil)
			So(svc.VerifyParty(ctx, conn.ID, "u-bob"), ShouldEqual, ErrNotParty)
			So(svc.VerifyParty(ctx, "missing", "u-alice"), ShouldEqual, ErrConnectionNotFound)
		})
	})
}
