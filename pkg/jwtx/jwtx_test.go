package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "pennywise"

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	signer := NewSignerHS256(secret, testIssuer, DefaultAccessTTL)
	verifier := NewVerifierHS256(secret, testIssuer)

	token, err := signer.Sign("01J0USER00000000000000TEST")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01J0USER00000000000000TEST", claims.UserID())
	require.Equal(t, testIssuer, claims.Issuer)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	signer := NewSignerHS256([]byte("access-secret"), testIssuer, DefaultAccessTTL)
	verifier := NewVerifierHS256([]byte("refresh-secret"), testIssuer)

	token, err := signer.Sign("user-1")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalid)
	require.NotErrorIs(t, err, ErrExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := NewSignerHS256(secret, testIssuer, DefaultAccessTTL).Sign("user-1")
	require.NoError(t, err)

	// Flip one bit in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = NewVerifierHS256(secret, testIssuer).Verify(tampered)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	verifier := NewVerifierHS256(secret, testIssuer)

	t.Run("valid before expiry", func(t *testing.T) {
		signer := NewSignerHS256(secret, testIssuer, time.Hour)
		token, err := signer.Sign("user-1")
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.NoError(t, err)
	})

	t.Run("fails at and after expiry", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		signer := NewSignerHS256(secret, testIssuer, time.Hour).
			WithClock(func() time.Time { return past })

		token, err := signer.Sign("user-1")
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
		require.ErrorIs(t, err, ErrInvalid) // expired tokens are still just invalid
	})
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	verifier := NewVerifierHS256([]byte("test-secret"), testIssuer)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := verifier.Verify(raw)
		require.ErrorIs(t, err, ErrInvalid, "input %q", raw)
	}
}

func TestVerifyIssuerMismatch(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := NewSignerHS256(secret, "other-service", DefaultAccessTTL).Sign("user-1")
	require.NoError(t, err)

	_, err = NewVerifierHS256(secret, testIssuer).Verify(token)
	require.ErrorIs(t, err, ErrInvalid)
}
