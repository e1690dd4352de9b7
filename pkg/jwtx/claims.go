// Package jwtx signs and verifies the stateless access and refresh tokens.
// Both kinds share one claim shape; they differ only in TTL and in which
// secret signed them.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultAccessTTL is the default lifetime for access tokens.
	DefaultAccessTTL = 15 * time.Minute

	// DefaultRefreshTTL is the default lifetime for refresh tokens.
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims are the token claims: the user ID rides in the registered "sub"
// claim, expiry in "exp". Validity is fully determined by signature plus
// these claims; nothing is persisted server-side.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds claims for the given subject with the provided TTL.
func NewClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// UserID returns the subject the token was issued for.
func (c Claims) UserID() string { return c.Subject }
