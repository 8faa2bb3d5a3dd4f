package auth

import (
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := IssueToken(secret, "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user_id 'user-1', got %q", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("expected email 'a@x.com', got %q", claims.Email)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject 'user-1', got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("expected non-empty JTI")
	}
}

func TestIssueTokenUnique(t *testing.T) {
	a, err := IssueToken("s", "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	b, err := IssueToken("s", "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if a == b {
		t.Error("expected distinct tokens for repeated logins")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret-1", "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := ParseToken("secret-2", token); err == nil {
		t.Error("expected error with wrong secret")
	}
}

func TestParseTokenInvalid(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-valid-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestTokenExpiry(t *testing.T) {
	token, err := IssueToken("secret", "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	expected := time.Now().Add(TokenExpiry)
	diff := claims.ExpiresAt.Time.Sub(expected)
	if diff > 5*time.Second || diff < -5*time.Second {
		t.Errorf("expiry off by %v", diff)
	}
}
