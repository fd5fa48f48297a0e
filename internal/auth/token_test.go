package auth

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := NewSessionToken("secret", 42, "abcdef0123456789", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	claims, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 || claims.SessionID != "abcdef0123456789" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := NewSessionToken("secret", 1, "sid", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := ParseSessionToken("other", token); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := NewSessionToken("secret", 1, "sid", -time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := ParseSessionToken("secret", token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
