// Package hashing implements the credential digest used for stored passwords
// and for delete confirmation.
package hashing

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Hash returns the SHA3-256 digest of plaintext as lowercase hexadecimal.
// The digest is deliberately deterministic so that delete confirmation can
// compare digests instead of plaintexts; without a salt or work factor it is
// NOT adequate for production credential storage, but changing that would
// break the stored format.
func Hash(plaintext string) string {
	sum := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether candidate hashes to storedDigest. The stored side
// is lowercased first so digests compare identically regardless of how they
// were persisted.
func Matches(candidate, storedDigest string) bool {
	return Hash(candidate) == strings.ToLower(storedDigest)
}
