package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pemira-fti/backend/internal/auth"
)

func authHandler(t *testing.T, tokens *auth.JWTManager, role auth.Role) http.HandlerFunc {
	t.Helper()
	return RequireAuth(tokens, role, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(GetNPM(r.Context())))
	})
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewJWTManager("test-secret-key", time.Hour)
	token, err := tokens.Generate(&auth.Identity{NPM: "A123", Role: auth.RoleVoter})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
		role   auth.Role
		want   int
	}{
		{"valid token", "Bearer " + token, auth.RoleVoter, http.StatusOK},
		{"any role accepted when unrestricted", "Bearer " + token, "", http.StatusOK},
		{"extra whitespace tolerated", "Bearer   " + token, auth.RoleVoter, http.StatusOK},
		{"missing header", "", auth.RoleVoter, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, auth.RoleVoter, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", auth.RoleVoter, http.StatusUnauthorized},
		{"role mismatch", "Bearer " + token, auth.RoleAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			authHandler(t, tokens, tt.role)(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
			if tt.want == http.StatusOK && rec.Body.String() != "A123" {
				t.Errorf("expected NPM from context, got %q", rec.Body.String())
			}
		})
	}
}
