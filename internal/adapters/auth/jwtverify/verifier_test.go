package jwtverify

import (
	"context"
	"errors"
	"testing"
	"time"

	"front-desk/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifier_Verify_MapsClaims(t *testing.T) {
	v := New(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":            int64(42),
		"role":          "staff",
		"destinationId": int64(2),
		"name":          "Ama Serwaa",
		"exp":           time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if id.UserID != "42" {
		t.Fatalf("expected user id 42, got %q", id.UserID)
	}
	if id.Role != auth.RoleStaff {
		t.Fatalf("expected role staff, got %q", id.Role)
	}
	if id.HomeDestinationID == nil || *id.HomeDestinationID != 2 {
		t.Fatalf("expected destination 2, got %v", id.HomeDestinationID)
	}
	if id.DisplayName != "Ama Serwaa" {
		t.Fatalf("expected display name, got %q", id.DisplayName)
	}
}

func TestVerifier_Verify_NoDestination(t *testing.T) {
	v := New(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":   int64(7),
		"role": "receptionist",
		"name": "Front Desk",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.HomeDestinationID != nil {
		t.Fatalf("expected nil destination, got %v", id.HomeDestinationID)
	}
	if id.Role != auth.RoleReceptionist {
		t.Fatalf("expected receptionist, got %q", id.Role)
	}
}

func TestVerifier_Verify_Rejects(t *testing.T) {
	v := New(testSecret)
	ctx := context.Background()

	if _, err := v.Verify(ctx, "   "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("empty: expected ErrTokenEmpty, got %v", err)
	}

	if _, err := v.Verify(ctx, "not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("garbage: expected ErrTokenInvalid, got %v", err)
	}

	// firmado con otro secreto
	other := signToken(t, "wrong-secret", jwt.MapClaims{
		"id":  int64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := v.Verify(ctx, other); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong secret: expected ErrTokenInvalid, got %v", err)
	}

	// expirado
	expired := signToken(t, testSecret, jwt.MapClaims{
		"id":  int64(1),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if _, err := v.Verify(ctx, expired); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expired: expected ErrTokenInvalid, got %v", err)
	}

	// sin user id
	anonymous := signToken(t, testSecret, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	if _, err := v.Verify(ctx, anonymous); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("missing id: expected ErrTokenInvalid, got %v", err)
	}
}
