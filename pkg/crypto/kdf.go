package crypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDFSHA256 derives key material using HKDF-SHA256 (RFC 5869).
//
// Parameters:
//   - inputKey: Input keying material (IKM), typically a raw ECDH shared secret.
//   - salt: Optional salt value (can be nil or empty).
//   - info: Context/application-specific info binding the derived bytes to a
//     single purpose (the SAS or MAC info string).
//   - length: Number of bytes to derive.
//
// Returns the derived key material of the specified length.
func HKDFSHA256(inputKey, salt, info []byte, length int) ([]byte, error) {
	// HKDF = HKDF-Expand(PRK := HKDF-Extract(salt, IKM), info, L)
	reader := hkdf.New(sha256.New, inputKey, salt, info)
	result := make([]byte, length)
	if _, err := io.ReadFull(reader, result); err != nil {
		return nil, err
	}
	return result, nil
}
