package service_test

import (
	"strings"
	"testing"

	"github.com/vibast-solutions/ms-go-session/app/service"
)

func TestPasswordHasherOpacity(t *testing.T) {
	hasher := service.NewPasswordHasher(4)

	hash, err := hasher.Hash("Secret123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Secret123!" {
		t.Fatalf("stored hash must never equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}

	if !hasher.Verify("Secret123!", hash) {
		t.Fatalf("expected verify to succeed for correct password")
	}
	if hasher.Verify("Secret123?", hash) {
		t.Fatalf("expected verify to fail for wrong password")
	}
	if hasher.Verify("", hash) {
		t.Fatalf("expected verify to fail for empty password")
	}
}

func TestPasswordHasherTokenRoundTrip(t *testing.T) {
	hasher := service.NewPasswordHasher(4)

	// Signed tokens exceed bcrypt's 72-byte input limit; HashToken must
	// still accept them.
	token := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20)
	hash, err := hasher.HashToken(token)
	if err != nil {
		t.Fatalf("hash token failed: %v", err)
	}
	if hash == token {
		t.Fatalf("stored hash must never equal the token")
	}

	if !hasher.VerifyToken(token, hash) {
		t.Fatalf("expected token verify to succeed")
	}
	if hasher.VerifyToken(token+"x", hash) {
		t.Fatalf("expected token verify to fail for different token")
	}
}

func TestNewPasswordHasherClampsInvalidCost(t *testing.T) {
	hasher := service.NewPasswordHasher(999)

	hash, err := hasher.Hash("Secret123!")
	if err != nil {
		t.Fatalf("hash with clamped cost failed: %v", err)
	}
	if !hasher.Verify("Secret123!", hash) {
		t.Fatalf("expected verify to succeed")
	}
}
