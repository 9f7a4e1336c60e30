// Package sasengine wraps the Curve25519/HKDF/HMAC primitives behind the
// opaque interface the SAS transaction state machine calls into: a public
// key to publish, a peer public key to ingest, and a MAC derivation keyed
// by an info string. Nothing above this package needs to know the
// underlying curve or hash.
package sasengine

import (
	"encoding/base64"
	"errors"
	"io"
	"sync"

	"github.com/keyward/sasverify/pkg/crypto"
)

// Method selects which MAC derivation the engine performs. It mirrors the
// two `message_authentication_codes` values the wire protocol negotiates.
type Method string

const (
	// MethodHKDFHMACSHA256 is the preferred MAC method: a 32-byte key is
	// derived with HKDF-SHA256 and used to key an HMAC-SHA256 over the
	// message.
	MethodHKDFHMACSHA256 Method = "hkdf-hmac-sha256"

	// MethodHMACSHA256 is the legacy "long KDF" method retained for
	// interoperability with older peers: the derived key is 256 bytes.
	MethodHMACSHA256 Method = "hmac-sha256"
)

// keyLengths maps a negotiated MAC method to the length, in bytes, of the
// HKDF-derived key used to key the HMAC.
var keyLengths = map[Method]int{
	MethodHKDFHMACSHA256: 32,
	MethodHMACSHA256:     256,
}

// ErrReleased is returned by any operation attempted on an Engine whose
// private material has already been released.
var ErrReleased = errors.New("sasengine: engine has been released")

// ErrNoSharedSecret is returned when CalculateMAC or GenerateBytes is
// called before SetTheirPublicKey has established the shared secret.
var ErrNoSharedSecret = errors.New("sasengine: peer public key not yet set")

// Engine holds one ephemeral Curve25519 key pair and, once the peer's
// public key has been supplied, the resulting shared secret. It is
// single-owner: exactly one Transaction uses one Engine for its lifetime.
type Engine struct {
	mu        sync.Mutex
	keyPair   crypto.Curve25519KeyPair
	secret    []byte
	method    Method
	released  bool
	rnd       io.Reader
}

// New creates an Engine with a freshly generated ephemeral key pair, ready
// to compute MACs with the given negotiated method once a peer key is set.
func New(method Method) (*Engine, error) {
	return newWithRand(method, nil)
}

func newWithRand(method Method, rnd io.Reader) (*Engine, error) {
	kp, err := crypto.Curve25519GenerateKey(rnd)
	if err != nil {
		return nil, err
	}
	return &Engine{keyPair: kp, method: method, rnd: rnd}, nil
}

// PublicKey returns this engine's ephemeral Curve25519 public key as
// unpadded base64, per the wire encoding used in the Key message.
func (e *Engine) PublicKey() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return "", ErrReleased
	}
	return base64.RawStdEncoding.EncodeToString(e.keyPair.PublicKey[:]), nil
}

// SetTheirPublicKey decodes the peer's unpadded-base64 Curve25519 public
// key and establishes the shared secret. It may be called at most once.
func (e *Engine) SetTheirPublicKey(unpaddedBase64 string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return ErrReleased
	}

	peerKey, err := base64.RawStdEncoding.DecodeString(unpaddedBase64)
	if err != nil {
		return err
	}

	secret, err := e.keyPair.SharedSecret(peerKey)
	if err != nil {
		return err
	}
	e.secret = secret
	return nil
}

// CalculateMAC returns the MAC of message under the engine's negotiated
// method, keyed by info. info binds the MAC to a specific purpose (the
// short-code derivation or a specific key attestation) so the same shared
// secret can be safely reused across several derivations.
func (e *Engine) CalculateMAC(message, info []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return nil, ErrReleased
	}
	if e.secret == nil {
		return nil, ErrNoSharedSecret
	}

	keyLen, ok := keyLengths[e.method]
	if !ok {
		keyLen = keyLengths[MethodHKDFHMACSHA256]
	}

	key, err := crypto.HKDFSHA256(e.secret, nil, info, keyLen)
	if err != nil {
		return nil, err
	}

	mac := crypto.HMACSHA256Slice(key, message)
	return mac, nil
}

// GenerateBytes derives length bytes from the shared secret and info with
// the same HKDF-SHA256 derivation CalculateMAC uses for its HMAC key.
func (e *Engine) GenerateBytes(info []byte, length int) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return nil, ErrReleased
	}
	if e.secret == nil {
		return nil, ErrNoSharedSecret
	}
	return crypto.HKDFSHA256(e.secret, nil, info, length)
}

// Release destroys the engine's private key and shared secret. It is
// idempotent and must be called no later than the owning transaction's
// entry into any terminal state.
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return
	}
	e.keyPair.Zero()
	for i := range e.secret {
		e.secret[i] = 0
	}
	e.secret = nil
	e.released = true
}
