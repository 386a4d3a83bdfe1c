// Package token issues and verifies the signed session tokens carried as
// bearer credentials. Claims are self-contained: verification never consults
// storage, so a deleted or demoted user stays valid until natural expiry
// (the staleness window equals the token TTL).
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity assertion embedded in every session token.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a process-wide HS256 secret.
// The secret is injected once at startup and never rotated mid-process.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager creates a Manager. A non-positive ttl defaults to 24 hours.
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue mints a signed token asserting the user's identity and role.
func (m *Manager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks signature and expiry. The outcome is binary: a malformed,
// tampered, or expired token yields ErrInvalidToken, never partial claims.
func (m *Manager) Verify(raw string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := t.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
