package jwt

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	exp := time.Now().Add(SessionTTL).Unix()
	token, err := GenerateToken("secret", "alice@example.com", "admin", exp)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	email, role, err := VerifyToken("secret", token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if email != "alice@example.com" || role != "admin" {
		t.Errorf("unexpected claims: email=%q role=%q", email, role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	exp := time.Now().Add(SessionTTL).Unix()
	token, err := GenerateToken("secret", "alice@example.com", "customer", exp)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := VerifyToken("other-secret", token); err == nil {
		t.Error("expected verification to fail with the wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	exp := time.Now().Add(-time.Minute).Unix()
	token, err := GenerateToken("secret", "alice@example.com", "customer", exp)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := VerifyToken("secret", token); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}
