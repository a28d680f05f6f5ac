// Package cryptox holds the password-hashing primitives for the identity
// layer. The first release digested passwords with a single unsalted SHA-256
// pass; that is not carried forward. Hashes here are argon2id with a random
// per-account salt, so a copied data file does not give up passwords to a
// dictionary run.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/paperback/internal/common"
)

const SaltSize = 16

// HashPassword derives an argon2id digest of password under salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// VerifyPassword recomputes the digest for candidate and compares it against
// hash in constant time.
func VerifyPassword(hash, candidate, salt []byte) bool {
	return subtle.ConstantTimeCompare(hash, HashPassword(candidate, salt)) == 1
}
