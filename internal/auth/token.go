// Package auth provides session credentials, the access gate, and the
// registration policy for panel accounts.
//
// Sessions are stateless: every request reconstructs the Session from a
// signed token, nothing is stored server-side and there is no revocation.
// Tokens are short-lived (24h) and the deployment is a single trusted
// operator host, so the trade is acceptable. If revocation is ever needed,
// the jti claim carried by every token is the denylist key to check in
// Verify before trusting the signature.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/opentocoder/docker-panel/internal/clock"
	"github.com/opentocoder/docker-panel/internal/users"
)

// TokenValidity is the fixed lifetime of a session credential.
const TokenValidity = 24 * time.Hour

// Claims is the token payload: identity plus the registered claims
// (expiry, issued-at, jti).
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64      `json:"userId"`
	Username string     `json:"username"`
	Role     users.Role `json:"role"`
}

// Session is the per-request identity derived from a verified token.
type Session struct {
	UserID    int64      `json:"id"`
	Username  string     `json:"username"`
	Role      users.Role `json:"role"`
	ExpiresAt time.Time  `json:"-"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.Role == users.RoleAdmin
}

// TokenService signs and verifies session credentials with a single
// process-wide symmetric secret.
type TokenService struct {
	secret []byte
	clk    clock.Clock
}

// NewTokenService creates a token service. A nil clk uses the system clock.
func NewTokenService(secret []byte, clk clock.Clock) *TokenService {
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &TokenService{secret: secret, clk: clk}
}

// Sign issues a credential for u, valid for TokenValidity from now.
func (t *TokenService) Sign(u users.User) (string, error) {
	now := t.clk.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a credential. It returns ok=false for any
// failure: bad signature, malformed encoding, or elapsed expiry. Callers
// cannot and must not distinguish the cases.
func (t *TokenService) Verify(credential string) (*Session, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clk.Now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	return &Session{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
