package auth

import (
	"context"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
)

// Session is the authenticated caller, resolved from the access token.
type Session struct {
	UserID string
	Email  string
	Role   user.RoleName
}

// Can reports whether the session's role grants perm.
func (s Session) Can(perm user.Permission) bool {
	return user.HasPermission(s.Role, perm)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by the auth middleware.
func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, ErrUnauthenticated
	}
	return s, nil
}
