package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    42,
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("secret", "sweetshop", time.Hour)

	raw, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if raw == "" {
		t.Fatalf("expected signed token, got empty string")
	}

	claims, err := m.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.Issuer != "sweetshop" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	m := NewManager("secret", "sweetshop", time.Hour)
	other := NewManager("different-secret", "sweetshop", time.Hour)

	raw, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestManager_Verify_Expired(t *testing.T) {
	m := NewManager("secret", "sweetshop", time.Hour)

	now := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		UserID: 7,
		Email:  "bob@example.com",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestManager_Verify_Malformed(t *testing.T) {
	m := NewManager("secret", "sweetshop", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(raw); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestManager_Verify_UnexpectedAlgorithm(t *testing.T) {
	m := NewManager("secret", "sweetshop", time.Hour)

	// alg=none tokens must never verify, even with a valid-looking payload.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestNewManager_DefaultTTL(t *testing.T) {
	m := NewManager("secret", "sweetshop", 0)

	raw, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	claims, err := m.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 24*time.Hour {
		t.Fatalf("expected 24h default ttl, got %v", ttl)
	}
}
