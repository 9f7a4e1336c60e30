// Package crypto provides the hashing, MAC, and key-derivation primitives
// consumed by the SAS engine and the commitment check. It wraps the
// standard library and golang.org/x/crypto rather than exposing them
// directly, so the rest of the module depends on a small, stable surface.
package crypto

import (
	"crypto/sha256"
	"hash"
)

// SHA256LenBytes is the SHA-256 output length in bytes.
const SHA256LenBytes = 32

// NewSHA256 returns a new hash.Hash for computing SHA-256 digests incrementally.
func NewSHA256() hash.Hash {
	return sha256.New()
}
