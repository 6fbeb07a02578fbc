package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testClaims(exp time.Time) Claims {
	return Claims{
		Sub:  "usr_1",
		Name: "Planner One",
		Role: "planner",
		JTI:  "jti-1",
		Exp:  exp.Unix(),
	}
}

func TestIssueAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, testClaims(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Sub != "usr_1" || claims.Role != "planner" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, testClaims(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := ParseToken([]byte("other-secret"), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "x." + parts[1]
	if _, err := ParseToken(secret, tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered payload, got %v", err)
	}

	if _, err := ParseToken(secret, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestParseTokenRequiresCompleteClaims(t *testing.T) {
	secret := []byte("test-secret")
	claims := testClaims(time.Now().Add(time.Hour))
	claims.Role = ""
	token, err := IssueToken(secret, claims)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseToken(secret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing role, got %v", err)
	}
}

func TestParseTokenExpiry(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, testClaims(time.Now().Add(-time.Minute)))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseToken(secret, token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestHashTokenStable(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Fatal("hash must be deterministic")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Fatal("different inputs must hash differently")
	}
}
