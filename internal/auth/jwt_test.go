package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	token, err := manager.Generate(&Identity{NPM: "A123", Role: RoleVoter})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.NPM != "A123" {
		t.Errorf("expected NPM A123, got %s", claims.NPM)
	}
	if claims.Role != RoleVoter {
		t.Errorf("expected voter role, got %s", claims.Role)
	}
}

func TestJWT_AdminRolePreserved(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	token, err := manager.Generate(&Identity{NPM: "panitia", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("expected admin role, got %s", claims.Role)
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", -time.Minute)

	token, err := manager.Generate(&Identity{NPM: "A123", Role: RoleVoter})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)
	other := NewJWTManager("a-different-secret", time.Hour)

	token, err := manager.Generate(&Identity{NPM: "A123", Role: RoleVoter})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestJWT_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage input, got %v", err)
	}
}
