// Package credentials hashes and verifies dashboard passwords with bcrypt.
package credentials

import (
	errors "github.com/Laisky/errors/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
)

// Cost is the bcrypt work factor applied to every stored password.
const Cost = 10

// dummyHash is compared against when no account matches, so unknown emails
// take about as long as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("nexfolio-timing-equalizer"), Cost)

// HashPassword returns a salted bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("Password must be at most 72 bytes")
		}
		return "", errors.Wrap(err, "hash password")
	}
	return string(h), nil
}

// VerifyPassword reports whether plaintext matches hash. Any failure,
// including a malformed hash, yields false.
func VerifyPassword(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// BurnCompare performs a throwaway comparison.
func BurnCompare(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plaintext))
}
