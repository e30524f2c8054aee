package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/groupchat-go/apperror"
)

// bearerScheme is the only accepted Authorization scheme, matched
// case-sensitively.
const bearerScheme = "Bearer"

// TokenResolver is the single capability the middleware needs: turning a
// presented token into a member and the backing token record. *TokenService
// implements it; tests substitute their own.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*Member, *AuthToken, error)
}

// Middleware returns a bearer-token authentication middleware over the given
// resolver. Mounted on protected route groups only; public routes never see
// it.
//
// Requests fall into three buckets:
//   - no Authorization header, or one that is not exactly "Bearer <token>":
//     nothing usable was presented, rejected as unauthenticated;
//   - a well-formed header whose token does not resolve: an actual credential
//     was presented and refused, rejected with a distinct message;
//   - a resolving token: session attached to the context, request proceeds.
func Middleware(resolver TokenResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r.Header.Get("Authorization"))
			if !ok {
				WriteError(w, r, apperror.NewAuthError("authentication credentials were not provided", nil))
				return
			}

			member, record, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithSession(r.Context(), &Session{Member: member, Token: record})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken parses an Authorization header value. A malformed
// header (wrong part count, wrong scheme) is treated exactly like a missing
// one: no credentials were presented.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != bearerScheme {
		return "", false
	}
	return parts[1], true
}
