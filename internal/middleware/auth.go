package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pemira-fti/backend/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// NPMKey is the context key for the authenticated identity key.
	NPMKey contextKey = "npm"
	// RoleKey is the context key for the session role.
	RoleKey contextKey = "role"
)

// GetNPM extracts the authenticated NPM from the context.
// Returns empty string if not found.
func GetNPM(ctx context.Context) string {
	npm, _ := ctx.Value(NPMKey).(string)
	return npm
}

// GetRole extracts the session role from the context.
func GetRole(ctx context.Context) auth.Role {
	role, _ := ctx.Value(RoleKey).(auth.Role)
	return role
}

// RequireAuth validates the bearer token and adds the identity to the
// request context. If role is non-empty, sessions with any other role get
// 403.
func RequireAuth(tokens *auth.JWTManager, role auth.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ErrorResponse(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		if role != "" && claims.Role != role {
			ErrorResponse(w, http.StatusForbidden, "insufficient privileges")
			return
		}

		ctx := context.WithValue(r.Context(), NPMKey, claims.NPM)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next(w, r.WithContext(ctx))
	}
}
