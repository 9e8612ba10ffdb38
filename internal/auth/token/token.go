// Package token issues and verifies the HS256 bearer tokens used for login
// sessions. Tokens are self-contained: subject plus expiry, no server-side
// session table.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is used when the caller does not supply a lifetime.
const DefaultTTL = 30 * time.Minute

// Verification outcomes. Expiry is distinguished from everything else so
// telemetry can tell a stale session from a forged or mangled token; callers
// that do not care treat both as unauthorized.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Service signs and verifies access tokens with a process-wide secret.
type Service struct {
	secret []byte
}

// NewService creates a token service. The secret must be non-empty; secret
// quality checks happen at config validation, before this is reached.
func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret must not be empty")
	}
	return &Service{secret: []byte(secret)}, nil
}

// Issue creates a signed token for subject expiring after ttl.
// A non-positive ttl means DefaultTTL.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded subject.
// Returns ErrTokenExpired past the expiry instant; every other failure
// (bad signature, malformed token, missing subject) is ErrTokenInvalid.
func (s *Service) Verify(tokenString string) (string, error) {
	tok, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !tok.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
