package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

var ErrNoToken = errors.New("no access token")

// TokenClaims are the claims carried by the backend's access token.
type TokenClaims struct {
	jwt.StandardClaims
	UserID   int    `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ExpiresIn returns the time left before the token expires; zero if unknown or expired.
func (c TokenClaims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == 0 {
		return 0
	}
	left := time.Unix(c.ExpiresAt, 0).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Claims decodes the current access token WITHOUT verifying its signature.
// The result is informational (whoami, log context); the backend remains the authority.
func (s *Store) Claims() (*TokenClaims, error) {
	token := s.AccessToken()
	if token == "" {
		return nil, ErrNoToken
	}
	claims := new(TokenClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, "parsing access token")
	}
	return claims, nil
}
