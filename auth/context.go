package auth

import "context"

// contextKey is a private type for context keys so values set here cannot
// collide with keys from other packages.
type contextKey string

const sessionContextKey contextKey = "auth_session"

// Session is the authenticated state the middleware attaches to a request:
// the resolved member and the token record that authenticated them. Logout
// needs the record to know which token to revoke.
type Session struct {
	Member *Member
	Token  *AuthToken
}

// NewContextWithSession returns a child context carrying the session.
func NewContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext extracts the session set by the middleware. The bool is
// false on public routes or when the middleware did not run.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok
}
