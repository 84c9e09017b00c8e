package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/policy"
	"github.com/texan-rex/diner-service/internal/service"
)

// contextKey is a type for context keys
type contextKey string

// Context keys
const (
	UserIDKey  contextKey = "userID"
	IsAdminKey contextKey = "isAdmin"
)

// Auth middleware for authenticating requests
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.WriteError(w, api.Authentication("authorization header required"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				api.WriteError(w, api.Authentication("invalid authorization header format"))
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				api.WriteError(w, api.Authentication("invalid or expired token"))
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				api.WriteError(w, api.Authentication("invalid token subject"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, IsAdminKey, claims.IsAdmin)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route on the authenticated account's admin flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetIsAdmin(r.Context()) {
			api.WriteError(w, api.Forbidden("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the authenticated user's ID from the context.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetIsAdmin extracts the admin flag from the context.
func GetIsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return ok && isAdmin
}

// GetActor builds the policy actor for the authenticated request.
func GetActor(ctx context.Context) (policy.Actor, bool) {
	id, ok := GetUserID(ctx)
	if !ok {
		return policy.Actor{}, false
	}
	return policy.Actor{ID: id, IsAdmin: GetIsAdmin(ctx)}, true
}
