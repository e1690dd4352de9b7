// Package cryptox holds the password hashing primitives shared by the user
// service and the bootstrap path.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor. 10 keeps login latency tolerable on
// modest hardware while staying above the library floor.
const PasswordCost = 10

var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// DummyHash is a throwaway bcrypt hash at the standard cost. Login compares
// against it when the email does not exist, so the miss costs the same as a
// real comparison.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword produces a salted bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// The comparison is constant-time within bcrypt itself.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
