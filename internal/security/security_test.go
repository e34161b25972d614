package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, errSign := GenerateToken("secret", "sub-1", "one@example.org", time.Hour)
	if errSign != nil {
		t.Fatalf("sign: %v", errSign)
	}

	claims, errParse := ParseToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse: %v", errParse)
	}
	if claims.Subject != "sub-1" || claims.Email != "one@example.org" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, errSign := GenerateToken("secret", "sub-1", "one@example.org", time.Hour)
	if errSign != nil {
		t.Fatalf("sign: %v", errSign)
	}

	if _, errParse := ParseToken("other-secret", token); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}

func TestTokenExpiry(t *testing.T) {
	token, errSign := GenerateToken("secret", "sub-1", "one@example.org", -time.Minute)
	if errSign != nil {
		t.Fatalf("sign: %v", errSign)
	}

	if _, errParse := ParseToken("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", errParse)
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, errHash := HashPassword("correcthorse")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	if hash == "correcthorse" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "correcthorse") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected mismatched password to fail")
	}
}
