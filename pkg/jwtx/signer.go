package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints signed tokens for a subject.
type Signer interface {
	Sign(subject string) (string, error)
}

// HS256Signer signs tokens with a shared HMAC secret. The service holds two
// of these: one for access tokens, one for refresh tokens, each with its own
// secret and TTL.
type HS256Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewSignerHS256(secret []byte, issuer string, ttl time.Duration) *HS256Signer {
	return &HS256Signer{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the signer's time source. Test hook.
func (s *HS256Signer) WithClock(now func() time.Time) *HS256Signer {
	s.now = now
	return s
}

// Sign issues a token for the subject with this signer's TTL.
func (s *HS256Signer) Sign(subject string) (string, error) {
	claims := NewClaims(subject, s.issuer, s.ttl, s.now().UTC())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// TTL reports the configured token lifetime.
func (s *HS256Signer) TTL() time.Duration { return s.ttl }
