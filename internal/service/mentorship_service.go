package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"communityhub/internal/model/auth"
	"communityhub/internal/model/mentorship"
	"communityhub/internal/pkg/id"
)

var (
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrMentorNotFound      = errors.New("mentor not found")
	ErrOnlyUsersMayRequest = errors.New("only users can initiate mentorship requests")
	ErrOnlyMentorMayAccept = errors.New("only the mentor can accept a request")
	ErrNotParty            = errors.New("not a party to this connection")
	ErrInvalidStatus       = errors.New("invalid connection status")
	ErrConnectionResolved  = errors.New("connection has already been resolved")
	ErrConnectionNotActive = errors.New("connection is not active")
)

// MentorshipService implements the connection lifecycle and private
// messaging. It is the single authoritative write path for messages;
// both the HTTP handlers and the websocket relay go through it.
type MentorshipService struct {
	users       UserStore
	connections ConnectionStore
	messages    MessageStore
}

// NewMentorshipService creates the mentorship service.
func NewMentorshipService(users UserStore, connections ConnectionStore, messages MessageStore) *MentorshipService {
	return &MentorshipService{
		users:       users,
		connections: connections,
		messages:    messages,
	}
}

// RequestConnection creates a pending connection from a mentee to a
// mentor. Only plain users may initiate. Re-requesting an existing pair
// returns the existing record unchanged.
//
// The duplicate check is read-then-create without a unique index, so two
// concurrent first requests can race into two records. Accepted at this
// scale; see the service tests.
func (s *MentorshipService) RequestConnection(ctx context.Context, menteeID string, menteeRole auth.UserRole, mentorID, message string) (*mentorship.Connection, error) {
	if menteeRole != auth.RoleUser {
		return nil, ErrOnlyUsersMayRequest
	}

	mentor, err := s.users.FindByID(ctx, mentorID)
	if err != nil || !mentor.IsMentor || !mentor.IsActive {
		return nil, ErrMentorNotFound
	}

	if existing, err := s.connections.FindByPair(ctx, mentorID, menteeID); err == nil {
		return s.resolveNames(ctx, existing), nil
	}

	conn := &mentorship.Connection{
		ID:      id.New(),
		Mentor:  mentorID,
		Mentee:  menteeID,
		Status:  mentorship.StatusPending,
		Message: message,
	}
	if err := s.connections.Create(ctx, conn); err != nil {
		log.Error().Err(err).Msg("failed to create connection")
		return nil, errors.New("failed to create connection")
	}

	log.Info().
		Str("connection_id", conn.ID).
		Str("mentor", mentorID).
		Str("mentee", menteeID).
		Msg("mentorship requested")

	return s.resolveNames(ctx, conn), nil
}

// ListConnections returns the connections where the user is mentor or
// mentee, with peer usernames resolved for display.
func (s *MentorshipService) ListConnections(ctx context.Context, userID string) ([]*mentorship.Connection, error) {
	conns, err := s.connections.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, conn := range conns {
		s.resolveNames(ctx, conn)
	}
	return conns, nil
}

// GetConnection loads a connection the caller is a party to.
func (s *MentorshipService) GetConnection(ctx context.Context, connectionID, callerID string) (*mentorship.Connection, error) {
	conn, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return nil, ErrConnectionNotFound
	}
	if !conn.IsParty(callerID) {
		return nil, ErrNotParty
	}
	return conn, nil
}

// UpdateStatus resolves a pending connection. Transitions are monotonic:
// only pending -> accepted|declined is legal. Accepting is reserved for
// the mentor; declining is open to either party (a mentee declining their
// own request withdraws it).
func (s *MentorshipService) UpdateStatus(ctx context.Context, connectionID, callerID string, newStatus mentorship.ConnectionStatus) (*mentorship.Connection, error) {
	if newStatus != mentorship.StatusAccepted && newStatus != mentorship.StatusDeclined {
		return nil, ErrInvalidStatus
	}

	conn, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return nil, ErrConnectionNotFound
	}
	if !conn.IsParty(callerID) {
		return nil, ErrNotParty
	}
	if conn.Status.IsTerminal() {
		return nil, ErrConnectionResolved
	}
	if newStatus == mentorship.StatusAccepted && callerID != conn.Mentor {
		return nil, ErrOnlyMentorMayAccept
	}

	if err := s.connections.UpdateStatus(ctx, connectionID, newStatus); err != nil {
		log.Error().Err(err).Str("connection_id", connectionID).Msg("failed to update connection status")
		return nil, errors.New("failed to update connection")
	}
	conn.Status = newStatus

	log.Info().
		Str("connection_id", connectionID).
		Str("status", string(newStatus)).
		Msg("connection status updated")

	return s.resolveNames(ctx, conn), nil
}

// SendMessage persists a private message inside an accepted connection.
// The receiver is derived as the other party. Callers broadcast the
// returned record to the relay; this method does not.
func (s *MentorshipService) SendMessage(ctx context.Context, connectionID, senderID, content string) (*mentorship.Message, error) {
	conn, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return nil, ErrConnectionNotFound
	}
	if conn.Status != mentorship.StatusAccepted {
		return nil, ErrConnectionNotActive
	}
	if !conn.IsParty(senderID) {
		return nil, ErrNotParty
	}

	msg := &mentorship.Message{
		ID:         id.New(),
		Connection: connectionID,
		Sender:     senderID,
		Receiver:   conn.OtherParty(senderID),
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		log.Error().Err(err).Str("connection_id", connectionID).Msg("failed to create message")
		return nil, errors.New("failed to send message")
	}

	if sender, err := s.users.FindByID(ctx, senderID); err == nil {
		msg.SenderName = sender.Username
	}

	return msg, nil
}

// ListMessages returns a connection's full history in ascending creation
// order. Only a party to the connection may read it.
func (s *MentorshipService) ListMessages(ctx context.Context, connectionID, callerID string) ([]*mentorship.Message, error) {
	conn, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return nil, ErrConnectionNotFound
	}
	if !conn.IsParty(callerID) {
		return nil, ErrNotParty
	}

	return s.messages.ListByConnection(ctx, connectionID)
}

// VerifyParty checks that userID is mentor or mentee of the connection.
// The relay calls this before letting a session join a room.
func (s *MentorshipService) VerifyParty(ctx context.Context, connectionID, userID string) error {
	conn, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return ErrConnectionNotFound
	}
	if !conn.IsParty(userID) {
		return ErrNotParty
	}
	return nil
}

func (s *MentorshipService) resolveNames(ctx context.Context, conn *mentorship.Connection) *mentorship.Connection {
	if mentor, err := s.users.FindByID(ctx, conn.Mentor); err == nil {
		conn.MentorName = mentor.Username
	}
	if mentee, err := s.users.FindByID(ctx, conn.Mentee); err == nil {
		conn.MenteeName = mentee.Username
	}
	return conn
}
