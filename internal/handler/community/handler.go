package community

import (
	"communityhub/internal/pkg/cache"
	"communityhub/internal/service"
)

// Handler serves the post, search and mentor directory endpoints.
type Handler struct {
	communityService *service.CommunityService
	authService      *service.AuthService
	cache            *cache.RedisCache
}

// NewHandler creates the community handler. redisCache may be nil; the
// mentor directory is then served uncached.
func NewHandler(communityService *service.CommunityService, authService *service.AuthService, redisCache *cache.RedisCache) *Handler {
	return &Handler{
		communityService: communityService,
		authService:      authService,
		cache:            redisCache,
	}
}

// ErrorResponse is the error body shared by all API endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
