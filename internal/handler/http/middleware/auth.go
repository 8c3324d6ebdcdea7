package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/auth"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RevocationChecker reports access tokens revoked at logout.
type RevocationChecker interface {
	IsTokenRevoked(token string) bool
}

// RoleResolver looks up a user's current role.
type RoleResolver interface {
	CurrentRole(ctx context.Context, userID string) (user.RoleName, error)
}

// AuthRequired rejects requests without a valid access token and stores the
// caller's auth.Session in the request context. It must run after
// jwtauth.Verifier. With a non-nil RoleResolver the role claim is replaced by
// the stored role, so a role change applies on the next request.
func AuthRequired(revoked RevocationChecker, roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, r, auth.ErrInvalidToken)
				return
			}

			if tokenType, ok := claims["type"].(string); !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, r, auth.ErrInvalidToken)
				return
			}

			if revoked != nil && revoked.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, r, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				response.HandleError(w, r, auth.ErrInvalidToken)
				return
			}
			email, _ := claims["email"].(string)
			claimRole, _ := claims["role"].(string)
			role := user.RoleName(claimRole)

			if roles != nil {
				role, err = roles.CurrentRole(r.Context(), userID)
				if errors.Is(err, user.ErrUserNotFound) {
					response.HandleError(w, r, auth.ErrInvalidToken)
					return
				}
				if err != nil {
					response.HandleError(w, r, err)
					return
				}
			}

			ctx := auth.WithSession(r.Context(), auth.Session{
				UserID: userID,
				Email:  email,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
