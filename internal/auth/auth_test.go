package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"hrm/backend/foundation/web"
)

func TestTokenRoundTrip(t *testing.T) {
	a, err := New("secret", time.Hour)
	if err != nil {
		t.Fatalf("new auth: %v", err)
	}

	token, err := a.GenerateToken("user-1", RoleEmployee)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}

	if claims.UserID() != "user-1" || claims.Role != RoleEmployee {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt-claims.IssuedAt != int64(time.Hour/time.Second) {
		t.Fatalf("unexpected expiry window: %d", claims.ExpiresAt-claims.IssuedAt)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	a, _ := New("secret", time.Hour)
	other, _ := New("other-secret", time.Hour)
	expired, _ := New("secret", time.Hour)
	expired.ttl = -time.Minute

	foreign, _ := other.GenerateToken("user-1", RoleAdmin)
	stale, _ := expired.GenerateToken("user-1", RoleAdmin)

	for name, token := range map[string]string{
		"garbage":     "not-a-token",
		"wrong key":   foreign,
		"expired":     stale,
		"empty token": "",
	} {
		if _, err := a.ValidateToken(token); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestDefaultTTL(t *testing.T) {
	a, _ := New("secret", 0)
	if a.ttl != 30*24*time.Hour {
		t.Fatalf("expected 30 day ttl, got %s", a.ttl)
	}
}

func TestAuthorized(t *testing.T) {
	c := Claims{Role: RoleEmployee}
	if c.Authorized(RoleAdmin) {
		t.Fatal("employee must not be authorized as admin")
	}
	if !c.Authorized(RoleAdmin, RoleEmployee) {
		t.Fatal("employee must be authorized when employee role is allowed")
	}
}

func TestGetClaims(t *testing.T) {
	if _, err := GetClaims(context.Background()); web.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing claims, got %v", err)
	}

	ctx := context.WithValue(context.Background(), Key, Claims{Role: RoleAdmin})
	claims, err := GetClaims(ctx)
	if err != nil || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v, err %v", claims, err)
	}
}
