package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/auth"
	"communityhub/internal/pkg/ctxutil"
	"communityhub/internal/service"
)

// TokenValidator resolves a bearer token to an active account. The auth
// service satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*auth.User, error)
}

// Auth extracts the Bearer token, validates it and injects the resolved
// identity into the request context. Missing, invalid and revoked
// credentials all answer 401; authorization (403) is the policy
// middleware's job.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Authorization header is required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Invalid authorization header",
			})
			return
		}

		user, err := validator.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			code := 40102
			message := "Token is invalid or expired"
			if errors.Is(err, service.ErrAccountDeactivated) {
				code = 40103
				message = "Account is deactivated"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    code,
				"message": message,
			})
			return
		}

		ctx := ctxutil.WithIdentity(c.Request.Context(), ctxutil.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Role:     string(user.Role),
			IsMentor: user.IsMentor,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
