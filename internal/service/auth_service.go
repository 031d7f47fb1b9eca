package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"communityhub/internal/model/auth"
	"communityhub/internal/pkg/id"
	"communityhub/internal/pkg/jwt"
	"communityhub/internal/pkg/password"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email or username already exists")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService implements account and credential operations.
type AuthService struct {
	users         UserStore
	refreshTokens RefreshTokenStore
	posts         PostStore
	connections   ConnectionStore
	jwt           *jwt.JWT
	refreshExpiry time.Duration
}

// NewAuthService creates the auth service.
func NewAuthService(
	users UserStore,
	refreshTokens RefreshTokenStore,
	posts PostStore,
	connections ConnectionStore,
	jwtSecret string,
	accessTokenExpiry time.Duration,
	refreshTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		posts:         posts,
		connections:   connections,
		jwt:           jwt.NewJWT(jwtSecret, accessTokenExpiry),
		refreshExpiry: refreshTokenExpiry,
	}
}

// RegisterParams are the register inputs.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	Role            string
	Bio             string
	Skills          []string
	Interests       []string
	MentorshipAreas []string
}

// AuthResult is returned by Register, Login and RefreshToken.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
	User         *auth.User
}

// Register creates a new account and signs it in.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if existing, _ := s.users.FindByUsername(ctx, params.Username); existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if existing, _ := s.users.FindByEmail(ctx, params.Email); existing != nil {
		return nil, ErrUserAlreadyExists
	}

	role := auth.UserRole(params.Role)
	if params.Role == "" {
		role = auth.RoleUser
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hashed, err := password.Hash(params.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, errors.New("failed to hash password")
	}

	user := &auth.User{
		ID:              id.New(),
		Username:        params.Username,
		Email:           params.Email,
		Password:        hashed,
		Role:            role,
		Bio:             params.Bio,
		Skills:          params.Skills,
		Interests:       params.Interests,
		IsMentor:        role.MentorCapable(),
		MentorshipAreas: params.MentorshipAreas,
		IsActive:        true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return nil, errors.New("failed to create user")
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates by username or email. Inactive accounts are
// rejected even with the correct password.
func (s *AuthService) Login(ctx context.Context, identifier, pwd string) (*AuthResult, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(pwd, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Does not fail the login, only logged.
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken mints a new access token from a stored refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenValue string) (*AuthResult, error) {
	refreshToken, err := s.refreshTokens.FindByToken(ctx, refreshTokenValue)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if refreshToken.IsExpired() {
		_ = s.refreshTokens.DeleteByToken(ctx, refreshTokenValue)
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, errors.New("failed to generate token")
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenValue,
		ExpiresIn:    int(s.jwt.GetExpiration().Seconds()),
		TokenType:    "Bearer",
		User:         user,
	}, nil
}

// Logout revokes a refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshTokenValue string) error {
	return s.refreshTokens.DeleteByToken(ctx, refreshTokenValue)
}

// GetUserByID loads one user.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ValidateToken verifies an access token and resolves its account.
// Inactive accounts fail validation regardless of token validity.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.User, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return user, nil
}

// UpdateProfile applies profile edits, re-checking email uniqueness when
// the email changes.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update *auth.ProfileUpdate) (*auth.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if update.Email != nil && *update.Email != user.Email {
		if existing, _ := s.users.FindByEmail(ctx, *update.Email); existing != nil {
			return nil, ErrEmailTaken
		}
	} else {
		update.Email = nil
	}

	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
		return nil, errors.New("failed to update profile")
	}

	return s.users.FindByID(ctx, userID)
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !password.Verify(currentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return errors.New("failed to hash password")
	}

	return s.users.UpdatePassword(ctx, userID, hashed)
}

// UserStats are profile dashboard counters.
type UserStats struct {
	PostsCount      int64 `json:"postsCount"`
	RepliesCount    int64 `json:"repliesCount"`
	LikesCount      int64 `json:"likesCount"`
	MentorshipCount int64 `json:"mentorshipCount"`
}

// GetUserStats aggregates a user's activity counters. Post authorship is
// keyed by username, connections by user id.
func (s *AuthService) GetUserStats(ctx context.Context, userID, username string) (*UserStats, error) {
	stats := &UserStats{}

	var err error
	if stats.PostsCount, err = s.posts.CountByAuthor(ctx, username); err != nil {
		return nil, err
	}
	if stats.RepliesCount, err = s.posts.CountRepliesByAuthor(ctx, username); err != nil {
		return nil, err
	}

	userPosts, err := s.posts.ListByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, p := range userPosts {
		stats.LikesCount += int64(p.Likes)
	}

	if stats.MentorshipCount, err = s.connections.CountByUser(ctx, userID); err != nil {
		return nil, err
	}

	return stats, nil
}

// ListMentors returns the public directory of active mentors.
func (s *AuthService) ListMentors(ctx context.Context) ([]*auth.User, error) {
	return s.users.ListMentors(ctx)
}

// ListUsers returns every account. Admin only; enforced at the route.
func (s *AuthService) ListUsers(ctx context.Context) ([]*auth.User, error) {
	return s.users.ListAll(ctx)
}

// UpdateUserRole changes an account's role and re-derives the mentor flag.
func (s *AuthService) UpdateUserRole(ctx context.Context, userID string, role auth.UserRole) (*auth.User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.users.UpdateRole(ctx, userID, role, role.MentorCapable()); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, userID)
}

// SetUserActive activates or deactivates an account. Deactivation also
// revokes the account's refresh tokens so it cannot re-authenticate.
func (s *AuthService) SetUserActive(ctx context.Context, userID string, active bool) (*auth.User, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.users.UpdateActive(ctx, userID, active); err != nil {
		return nil, err
	}

	if !active {
		if err := s.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke refresh tokens")
		}
	}

	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *auth.User) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, errors.New("failed to generate token")
	}

	refreshTokenValue := jwt.GenerateRefreshToken()
	refreshToken := &auth.RefreshToken{
		ID:        id.New(),
		UserID:    user.ID,
		Token:     refreshTokenValue,
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	}
	if err := s.refreshTokens.Create(ctx, refreshToken); err != nil {
		log.Error().Err(err).Msg("failed to create refresh token")
		return nil, errors.New("failed to create refresh token")
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenValue,
		ExpiresIn:    int(s.jwt.GetExpiration().Seconds()),
		TokenType:    "Bearer",
		User:         user,
	}, nil
}
