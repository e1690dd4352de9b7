package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid covers every verification failure: bad signature, malformed
	// token, wrong issuer, elapsed expiry. Callers that care specifically
	// about expiry can branch with errors.Is(err, ErrExpired); everyone else
	// treats the token as simply invalid.
	ErrInvalid = errors.New("jwtx: invalid token")

	// ErrExpired wraps ErrInvalid so expired tokens still match ErrInvalid.
	ErrExpired = fmt.Errorf("%w: expired", ErrInvalid)
)

// Verifier validates a raw token and returns its claims if legitimate.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Verifier validates HMAC-signed tokens against a single shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

func NewVerifierHS256(secret []byte, issuer string) *HS256Verifier {
	return &HS256Verifier{secret: secret, issuer: issuer}
}

// Verify parses and validates the token. Signature, structure, issuer and
// expiry are all checked; the subject must be present.
func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalid
	}

	return claims, nil
}
