package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"communityhub/internal/model/auth"
	"communityhub/internal/pkg/ctxutil"
)

// Capability names a privileged action. Routes declare the capability
// they need; the table below decides which roles hold it.
type Capability string

const (
	// CapRequestMentorship is held only by plain users. Mentors and
	// admins are on the receiving side of requests.
	CapRequestMentorship Capability = "mentorship:request"

	// CapManageUsers covers the admin account endpoints.
	CapManageUsers Capability = "users:manage"
)

// rule grants a capability either to every role at or above minRole, or
// to an exact set of roles. allow wins when both are set.
type rule struct {
	minRole auth.UserRole
	allow   []auth.UserRole
}

var policy = map[Capability]rule{
	CapRequestMentorship: {allow: []auth.UserRole{auth.RoleUser}},
	CapManageUsers:       {minRole: auth.RoleAdmin},
}

// Allowed reports whether a role holds the capability. Unknown
// capabilities are denied.
func Allowed(role auth.UserRole, cap Capability) bool {
	r, ok := policy[cap]
	if !ok {
		return false
	}
	if len(r.allow) > 0 {
		for _, allowed := range r.allow {
			if role == allowed {
				return true
			}
		}
		return false
	}
	return role.AtLeast(r.minRole)
}

// Require denies the request with 403 unless the authenticated identity
// holds the capability. Must run after Auth.
func Require(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := ctxutil.GetIdentity(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Authentication required",
			})
			return
		}

		if !Allowed(auth.UserRole(ident.Role), cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    40301,
				"message": "Insufficient permissions",
			})
			return
		}

		c.Next()
	}
}
