package mentorship

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	authmodel "communityhub/internal/model/auth"
	mmodel "communityhub/internal/model/mentorship"
	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

var errStoreNotFound = errors.New("not found")

type memUserStore struct {
	users map[string]*authmodel.User
}

func (s *memUserStore) Create(_ context.Context, u *authmodel.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id string) (*authmodel.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errStoreNotFound
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (*authmodel.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errStoreNotFound
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*authmodel.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errStoreNotFound
}

func (s *memUserStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*authmodel.User, error) {
	if u, err := s.FindByUsername(ctx, identifier); err == nil {
		return u, nil
	}
	return s.FindByEmail(ctx, identifier)
}

func (s *memUserStore) UpdateLastLogin(_ context.Context, _ string) error  { return nil }
func (s *memUserStore) UpdatePassword(_ context.Context, _, _ string) error { return nil }

func (s *memUserStore) UpdateProfile(_ context.Context, _ string, _ *authmodel.ProfileUpdate) error {
	return nil
}

func (s *memUserStore) UpdateRole(_ context.Context, _ string, _ authmodel.UserRole, _ bool) error {
	return nil
}

func (s *memUserStore) UpdateActive(_ context.Context, _ string, _ bool) error { return nil }
func (s *memUserStore) ListMentors(_ context.Context) ([]*authmodel.User, error) {
	return nil, nil
}
func (s *memUserStore) ListAll(_ context.Context) ([]*authmodel.User, error) { return nil, nil }

type memConnectionStore struct {
	conns map[string]*mmodel.Connection
}

func (s *memConnectionStore) Create(_ context.Context, conn *mmodel.Connection) error {
	s.conns[conn.ID] = conn
	return nil
}

func (s *memConnectionStore) FindByID(_ context.Context, id string) (*mmodel.Connection, error) {
	if conn, ok := s.conns[id]; ok {
		return conn, nil
	}
	return nil, errStoreNotFound
}

func (s *memConnectionStore) FindByPair(_ context.Context, mentorID, menteeID string) (*mmodel.Connection, error) {
	for _, conn := range s.conns {
		if conn.Mentor == mentorID && conn.Mentee == menteeID {
			return conn, nil
		}
	}
	return nil, errStoreNotFound
}

func (s *memConnectionStore) ListByUser(_ context.Context, userID string) ([]*mmodel.Connection, error) {
	var out []*mmodel.Connection
	for _, conn := range s.conns {
		if conn.IsParty(userID) {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (s *memConnectionStore) UpdateStatus(_ context.Context, id string, status mmodel.ConnectionStatus) error {
	conn, ok := s.conns[id]
	if !ok {
		return errStoreNotFound
	}
	conn.Status = status
	return nil
}

func (s *memConnectionStore) CountByUser(_ context.Context, userID string) (int64, error) {
	conns, _ := s.ListByUser(context.Background(), userID)
	return int64(len(conns)), nil
}

type memMessageStore struct {
	msgs []*mmodel.Message
}

func (s *memMessageStore) Create(_ context.Context, msg *mmodel.Message) error {
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *memMessageStore) ListByConnection(_ context.Context, connectionID string) ([]*mmodel.Message, error) {
	var out []*mmodel.Message
	for _, msg := range s.msgs {
		if msg.Connection == connectionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func newTestHandler(conns ...*mmodel.Connection) *Handler {
	users := &memUserStore{users: map[string]*authmodel.User{
		"m-david": {ID: "m-david", Username: "david", Role: authmodel.RoleMentor, IsMentor: true, IsActive: true},
		"u-alice": {ID: "u-alice", Username: "alice", Role: authmodel.RoleUser, IsActive: true},
	}}
	connStore := &memConnectionStore{conns: make(map[string]*mmodel.Connection)}
	for _, conn := range conns {
		connStore.conns[conn.ID] = conn
	}
	svc := service.NewMentorshipService(users, connStore, &memMessageStore{})
	return NewHandler(svc, nil)
}

func serve(h *Handler, userID, method, target, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			ident := ctxutil.Identity{UserID: userID, Username: userID, Role: "user"}
			c.Request = c.Request.WithContext(ctxutil.WithIdentity(c.Request.Context(), ident))
		})
	}
	r.POST("/api/mentorship/request", h.RequestConnection)
	r.GET("/api/mentorship/connections", h.ListConnections)
	r.PUT("/api/mentorship/connections/:id", h.UpdateStatus)
	r.GET("/api/mentorship/connections/:id/messages", h.ListMessages)
	r.POST("/api/mentorship/connections/:id/messages", h.SendMessage)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func errorBody(w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestSendMessageHTTPStatus(t *testing.T) {
	Convey("Given connections in each lifecycle state", t, func() {
		h := newTestHandler(
			&mmodel.Connection{ID: "c-pending", Mentor: "m-david", Mentee: "u-alice", Status: mmodel.StatusPending},
			&mmodel.Connection{ID: "c-declined", Mentor: "m-david", Mentee: "u-alice", Status: mmodel.StatusDeclined},
			&mmodel.Connection{ID: "c-accepted", Mentor: "m-david", Mentee: "u-alice", Status: mmodel.StatusAccepted},
		)

		Convey("Messaging a pending connection answers 400", func() {
			w := serve(h, "u-alice", http.MethodPost, "/api/mentorship/connections/c-pending/messages", `{"content":"hi"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorBody(w).Code, ShouldEqual, 40006)
		})

		Convey("Messaging a declined connection answers 400", func() {
			w := serve(h, "u-alice", http.MethodPost, "/api/mentorship/connections/c-declined/messages", `{"content":"hi"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorBody(w).Code, ShouldEqual, 40006)
		})

		Convey("A non-party sender answers 403", func() {
			w := serve(h, "u-mallory", http.MethodPost, "/api/mentorship/connections/c-accepted/messages", `{"content":"hi"}`)
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("An unknown connection answers 404", func() {
			w := serve(h, "u-alice", http.MethodPost, "/api/mentorship/connections/nope/messages", `{"content":"hi"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A party messaging an accepted connection answers 201", func() {
			w := serve(h, "u-alice", http.MethodPost, "/api/mentorship/connections/c-accepted/messages", `{"content":"hi"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)

			var msg mmodel.Message
			So(json.Unmarshal(w.Body.Bytes(), &msg), ShouldBeNil)
			So(msg.Content, ShouldEqual, "hi")
			So(msg.Receiver, ShouldEqual, "m-david")
		})

		Convey("An unauthenticated request answers 401", func() {
			w := serve(h, "", http.MethodPost, "/api/mentorship/connections/c-accepted/messages", `{"content":"hi"}`)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})
	})
}

func TestUpdateStatusHTTPStatus(t *testing.T) {
	Convey("Given a pending and a resolved connection", t, func() {
		h := newTestHandler(
			&mmodel.Connection{ID: "c-pending", Mentor: "m-david", Mentee: "u-alice", Status: mmodel.StatusPending},
			&mmodel.Connection{ID: "c-declined", Mentor: "m-david", Mentee: "u-alice", Status: mmodel.StatusDeclined},
		)

		Convey("The mentor accepting a pending request answers 200", func() {
			w := serve(h, "m-david", http.MethodPut, "/api/mentorship/connections/c-pending", `{"status":"accepted"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var conn mmodel.Connection
			So(json.Unmarshal(w.Body.Bytes(), &conn), ShouldBeNil)
			So(conn.Status, ShouldEqual, mmodel.StatusAccepted)
		})

		Convey("Resolving an already resolved connection answers 400", func() {
			w := serve(h, "m-david", http.MethodPut, "/api/mentorship/connections/c-declined", `{"status":"accepted"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorBody(w).Code, ShouldEqual, 40007)
		})

		Convey("The mentee accepting answers 403", func() {
			w := serve(h, "u-alice", http.MethodPut, "/api/mentorship/connections/c-pending", `{"status":"accepted"}`)
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("A third party answers 403", func() {
			w := serve(h, "u-mallory", http.MethodPut, "/api/mentorship/connections/c-pending", `{"status":"declined"}`)
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("An unknown connection answers 404", func() {
			w := serve(h, "m-david", http.MethodPut, "/api/mentorship/connections/nope", `{"status":"accepted"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A status outside the vocabulary fails binding with 400", func() {
			w := serve(h, "m-david", http.MethodPut, "/api/mentorship/connections/c-pending", `{"status":"paused"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorBody(w).Code, ShouldEqual, 40001)
		})
	})
}

func TestListMessagesHTTPStatus(t *testing.T) {
	Convey("Given an accepted connection with history", t, func() {
		h := newTestHandler(
			&mmodel.Connection{ID: "c-accepted", Mentor: "m-david", Mentee: "u-alice", Status: mmodel.StatusAccepted},
		)
		serve(h, "u-alice", http.MethodPost, "/api/mentorship/connections/c-accepted/messages", `{"content":"hi"}`)

		Convey("A party reads the history", func() {
			w := serve(h, "m-david", http.MethodGet, "/api/mentorship/connections/c-accepted/messages", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var msgs []*mmodel.Message
			So(json.Unmarshal(w.Body.Bytes(), &msgs), ShouldBeNil)
			So(len(msgs), ShouldEqual, 1)
		})

		Convey("A non-party is refused with 403", func() {
			w := serve(h, "u-mallory", http.MethodGet, "/api/mentorship/connections/c-accepted/messages", "")
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})
	})
}
