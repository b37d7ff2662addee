// Package password derives and verifies salted password hashes.
//
// The stored format is hex(salt || digest) where digest is
// PBKDF2-HMAC-SHA256 over the plaintext with 100,000 iterations. The salt is
// additionally kept in its own column so verification never has to trust the
// embedded copy.
package password

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the fixed salt length in bytes.
	SaltSize = 16

	// Iterations is the PBKDF2 iteration count. Changing it invalidates all
	// stored hashes, so it is fixed for the lifetime of the database.
	Iterations = 100_000
)

// Hash derives a hash for the password under a fresh random salt.
func Hash(password string) (hash string, salt []byte, err error) {
	salt = make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", nil, fmt.Errorf("generate salt: %w", err)
	}
	return HashWithSalt(password, salt), salt, nil
}

// HashWithSalt derives the hash deterministically for a known salt.
func HashWithSalt(password string, salt []byte) string {
	digest := pbkdf2.Key([]byte(password), salt, Iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(append(append([]byte{}, salt...), digest...))
}

// Verify recomputes the derivation with the stored salt and compares in
// constant time. A malformed stored value verifies false, never errors.
func Verify(stored, password string, salt []byte) bool {
	if len(salt) != SaltSize {
		return false
	}
	if _, err := hex.DecodeString(stored); err != nil {
		return false
	}
	expected := HashWithSalt(password, salt)
	return hmac.Equal([]byte(expected), []byte(stored))
}
