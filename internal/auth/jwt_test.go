package auth

import (
	"testing"
	"time"
)

func TestJWTTokenRoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(42, "test-signing-key", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ValidateJWTToken(token, "test-signing-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
}

func TestJWTTokenRejectsWrongKey(t *testing.T) {
	token, err := GenerateJWTToken(42, "test-signing-key", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateJWTToken(token, "another-key"); err == nil {
		t.Fatal("expected validation error for wrong signing key")
	}
}

func TestJWTTokenRejectsExpired(t *testing.T) {
	token, err := GenerateJWTToken(42, "test-signing-key", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateJWTToken(token, "test-signing-key"); err == nil {
		t.Fatal("expected validation error for expired token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Fatal("expected password to match its hash")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Fatal("expected mismatch for wrong password")
	}
}
