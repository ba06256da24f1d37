package remote

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestStaticTokenSourcePassesLiveJWT(t *testing.T) {
	raw := signedToken(t, time.Now().Add(time.Hour))

	token, err := NewStaticTokenSource(raw).Token()
	if err != nil {
		t.Fatalf("expected live token to pass, got %v", err)
	}
	if token != raw {
		t.Fatalf("expected token to pass through unchanged")
	}
}

func TestStaticTokenSourceRejectsExpiredJWT(t *testing.T) {
	raw := signedToken(t, time.Now().Add(-time.Hour))

	_, err := NewStaticTokenSource(raw).Token()
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestStaticTokenSourcePassesOpaqueToken(t *testing.T) {
	token, err := NewStaticTokenSource("not-a-jwt").Token()
	if err != nil {
		t.Fatalf("expected opaque token to pass, got %v", err)
	}
	if token != "not-a-jwt" {
		t.Fatalf("expected opaque token unchanged, got %q", token)
	}
}

func TestStaticTokenSourceAllowsEmptyToken(t *testing.T) {
	token, err := NewStaticTokenSource("").Token()
	if err != nil {
		t.Fatalf("expected empty token to yield no error, got %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
}
