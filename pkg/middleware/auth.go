package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hostelmess/hostelmess/config"
	"github.com/hostelmess/hostelmess/pkg/auth"
	"github.com/hostelmess/hostelmess/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// Authenticate validates the session on every request that carries one.
// The token is read from the session cookie (the normal browser path) or
// from an Authorization: Bearer header (API clients). Requests without a
// valid session are rejected with 401.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		ctx = context.WithValue(ctx, roleKey{}, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only sessions holding one of the given roles.
// Must run after Authenticate. Non-matching sessions get 401 — the API
// treats wrong-role the same as no-session.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromCtx returns the authenticated user's id, if any.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok
}

// WithUser injects a user id and role into the request context.
// Intended for handler tests that bypass the middleware chain.
func WithUser(r *http.Request, userID uint, role string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey{}, userID)
	ctx = context.WithValue(ctx, roleKey{}, role)
	return r.WithContext(ctx)
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(config.SessionCookie()); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
