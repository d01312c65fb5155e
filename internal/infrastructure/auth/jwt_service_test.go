package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) *JWTServiceImpl {
	return NewJWTService("test-secret-key", "knowmate", accessTTL, refreshTTL)
}

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Email:    "alice@example.com",
		Username: "alice",
		Role:     domain.RoleAdmin,
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	user := testUser()

	token, err := svc.GenerateAccessToken(user, domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %s", claims.Username)
	}
	if claims.Subject != user.Email {
		t.Errorf("expected subject %s, got %s", user.Email, claims.Subject)
	}
	// The role claim carries whatever role the token was scoped to,
	// not the account's stored role.
	if claims.Role != domain.RoleStudent {
		t.Errorf("expected role %s, got %s", domain.RoleStudent, claims.Role)
	}
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	user := testUser()

	first, err := svc.GenerateRefreshToken(user, user.Role)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	second, err := svc.GenerateRefreshToken(user, user.Role)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if first == second {
		t.Error("two mints for the same user must produce distinct tokens")
	}
}

func TestJWTService_ExtractIdentity(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	token, err := svc.GenerateRefreshToken(testUser(), domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		identity string
	}{
		{
			name:     "valid token yields subject",
			token:    token,
			identity: "alice@example.com",
		},
		{
			name:     "garbage token yields empty identity",
			token:    "not.a.jwt",
			identity: "",
		},
		{
			name:     "empty token yields empty identity",
			token:    "",
			identity: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.ExtractIdentity(tt.token); got != tt.identity {
				t.Errorf("ExtractIdentity() = %q, want %q", got, tt.identity)
			}
		})
	}
}

func TestJWTService_IsValid(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	token, err := svc.GenerateRefreshToken(testUser(), domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if !svc.IsValid(token, "alice@example.com") {
		t.Error("expected token to validate against its own subject")
	}
	if svc.IsValid(token, "mallory@example.com") {
		t.Error("token must not validate against a different identity")
	}

	// A token signed with another key must fail even with the right subject.
	other := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	other.secretKey = []byte("a-different-secret")
	foreign, err := other.GenerateRefreshToken(testUser(), domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if svc.IsValid(foreign, "alice@example.com") {
		t.Error("token signed with a foreign key must not validate")
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute, -time.Minute)
	token, err := svc.GenerateAccessToken(testUser(), domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if svc.IsValid(token, "alice@example.com") {
		t.Error("expired token must not validate")
	}

	// Expiry surfaces as its own sentinel so the middleware can tell
	// an elapsed token apart from a forged one.
	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired for an elapsed token, got %v", err)
	}

	other := newTestJWTService(15*time.Minute, 15*time.Minute)
	other.secretKey = []byte("a-different-secret")
	forged, err := other.GenerateAccessToken(testUser(), domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := svc.ValidateAccessToken(forged); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for a foreign signature, got %v", err)
	}
	// Expiry does not hide the subject; refresh resolves the account
	// first and rejects on validity afterwards.
	if got := svc.ExtractIdentity(token); got != "alice@example.com" {
		t.Errorf("ExtractIdentity on expired token = %q, want subject", got)
	}
}
