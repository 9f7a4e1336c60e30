package crypto

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/curve25519"
)

// Curve25519KeySize is the size in bytes of a Curve25519 public or private key.
const Curve25519KeySize = 32

// ErrInvalidPublicKey is returned when a peer-supplied Curve25519 public key
// does not have the expected length.
var ErrInvalidPublicKey = errors.New("crypto: invalid curve25519 public key")

// Curve25519KeyPair is an ephemeral Curve25519 key pair used for one SAS
// key-agreement run. It is never persisted and is only ever compared,
// serialized, or zeroed.
type Curve25519KeyPair struct {
	PrivateKey [Curve25519KeySize]byte
	PublicKey  [Curve25519KeySize]byte
}

// Curve25519GenerateKey generates a new ephemeral Curve25519 key pair.
// If rnd is nil, crypto/rand is used.
func Curve25519GenerateKey(rnd io.Reader) (Curve25519KeyPair, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	var kp Curve25519KeyPair
	if _, err := io.ReadFull(rnd, kp.PrivateKey[:]); err != nil {
		return Curve25519KeyPair{}, err
	}

	pub, err := curve25519.X25519(kp.PrivateKey[:], curve25519.Basepoint)
	if err != nil {
		return Curve25519KeyPair{}, err
	}
	copy(kp.PublicKey[:], pub)

	return kp, nil
}

// SharedSecret computes the X25519 shared secret between this key pair's
// private key and a peer's public key.
func (kp Curve25519KeyPair) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	if len(peerPublicKey) != Curve25519KeySize {
		return nil, ErrInvalidPublicKey
	}
	return curve25519.X25519(kp.PrivateKey[:], peerPublicKey)
}

// Zero overwrites the private key material in place. Callers should invoke
// this as soon as the shared secret has been derived and is no longer needed.
func (kp *Curve25519KeyPair) Zero() {
	for i := range kp.PrivateKey {
		kp.PrivateKey[i] = 0
	}
}
