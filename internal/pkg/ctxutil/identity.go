package ctxutil

import "context"

// Identity is the resolved credential of the current request. It is built
// once by the auth middleware and threaded through the request context, so
// no handler or service reaches for ambient token state.
type Identity struct {
	UserID   string
	Username string
	Role     string
	IsMentor bool
}

// identityKeyType uses a private type to avoid collisions with other context keys
type identityKeyType struct{}

var identityKey = identityKeyType{}

// WithIdentity injects the resolved identity into ctx. Intended for the auth
// middleware, after token validation:
//
//	ctx := ctxutil.WithIdentity(c.Request.Context(), ident)
//	c.Request = c.Request.WithContext(ctx)
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity resolves the identity from ctx. The second return value is
// false when the request was not authenticated.
func GetIdentity(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	v := ctx.Value(identityKey)
	ident, ok := v.(Identity)
	if !ok || ident.UserID == "" {
		return Identity{}, false
	}
	return ident, true
}
