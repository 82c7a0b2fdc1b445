// Package session issues and verifies the signed, time-limited tokens that
// prove an authenticated principal. Verification is stateless - there is no
// revocation list, expiry is the only kill switch short of secret rotation.
package session

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the subject with a fixed validity window.
func (m *Manager) Issue(subject string) (string, error) {
	now := time.Now()

	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)

	return token.SignedString(m.secret)
}

// Verify returns the subject of a valid token. Expired tokens are reported
// separately from malformed or tampered ones.
func (m *Manager) Verify(tokenStr string) (string, error) {
	token, err := jwtlib.ParseWithClaims(
		tokenStr,
		&jwtlib.RegisteredClaims{},
		func(t *jwtlib.Token) (any, error) {
			return m.secret, nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtlib.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
