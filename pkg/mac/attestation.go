// Package mac implements the key-attestation step of SAS verification:
// producing the outbound MAC over the local device's (and optionally the
// user's cross-signing master) Ed25519 key, and checking an inbound MAC
// against the identity keys the verifier already knows for the peer.
//
// This package has no notion of transaction state; it is pure computation
// over the mutually derived secret plus whatever identity information the
// caller already holds. The verification package drives it and maps its
// outcomes onto cancellation codes.
package mac

import (
	"encoding/base64"
	"errors"
	"sort"
	"strings"

	"github.com/keyward/sasverify/pkg/crypto"
)

// ErrKeysMismatch is returned by Verify when the recomputed digest over the
// sorted key ids does not match the peer's `keys` field, or when a
// per-key MAC does not match a known fingerprint.
var ErrKeysMismatch = errors.New("mac: keys MAC mismatch")

// ErrNoKeysVerified is returned by Verify when neither a device nor the
// cross-signing master key was verified by any entry in the peer's MAC.
var ErrNoKeysVerified = errors.New("mac: no device or master key verified")

// Calculator is the subset of the SAS engine this package needs: a keyed
// MAC over a message, under an info string that binds the MAC to one
// specific purpose.
type Calculator interface {
	CalculateMAC(message, info []byte) ([]byte, error)
}

// KeyMAC is the wire representation of one direction's key attestation:
// a map from "ed25519:<device or master key id>" to a base64 MAC, plus a
// MAC over the sorted list of those ids.
type KeyMAC struct {
	Mac  map[string]string
	Keys string
}

// CrossSigning describes the local user's cross-signing master key, used
// only when it is present and marked trusted by the surrounding system.
type CrossSigning struct {
	MasterPublicKey string
	Trusted         bool
}

const ed25519Prefix = "ed25519:"

// Produce computes the outbound KeyMAC: a MAC over the local device's
// Ed25519 fingerprint, and, if the local cross-signing identity is
// trusted and has a master key, a second MAC over that master public key.
func Produce(calc Calculator, baseInfo []byte, myDeviceID, myFingerprint string, cs *CrossSigning) (KeyMAC, error) {
	keyMap := make(map[string]string)

	deviceKeyID := ed25519Prefix + myDeviceID
	deviceMAC, err := calc.CalculateMAC([]byte(myFingerprint), infoFor(baseInfo, deviceKeyID))
	if err != nil {
		return KeyMAC{}, err
	}
	keyMap[deviceKeyID] = encodeMAC(deviceMAC)

	if cs != nil && cs.Trusted && cs.MasterPublicKey != "" {
		masterKeyID := ed25519Prefix + cs.MasterPublicKey
		masterMAC, err := calc.CalculateMAC([]byte(cs.MasterPublicKey), infoFor(baseInfo, masterKeyID))
		if err != nil {
			return KeyMAC{}, err
		}
		keyMap[masterKeyID] = encodeMAC(masterMAC)
	}

	keysMAC, err := calc.CalculateMAC([]byte(sortedKeyIDs(keyMap)), infoFor(baseInfo, "KEY_IDS"))
	if err != nil {
		return KeyMAC{}, err
	}

	return KeyMAC{Mac: keyMap, Keys: encodeMAC(keysMAC)}, nil
}

// Result reports which keys Verify was able to attest.
type Result struct {
	VerifiedDevices  []string
	MasterKeyVerified bool
}

// Verify checks an inbound KeyMAC against the identity information the
// caller already knows for the peer: a device-id-to-fingerprint mapping
// and the peer's cross-signing master public key, if any.
//
// calc must be keyed by the same shared secret as the peer used to
// produce their, but with sender/receiver swapped into baseInfo by the
// caller (base_info is direction-specific).
func Verify(calc Calculator, baseInfo []byte, their KeyMAC, devices map[string]string, masterKey string) (Result, error) {
	expectedKeysMAC, err := calc.CalculateMAC([]byte(sortedKeyIDs(their.Mac)), infoFor(baseInfo, "KEY_IDS"))
	if err != nil {
		return Result{}, err
	}
	gotKeysMAC, err := decodeMAC(their.Keys)
	if err != nil || !crypto.HMACEqual(expectedKeysMAC, gotKeysMAC) {
		return Result{}, ErrKeysMismatch
	}

	var result Result
	for keyID, gotMAC := range their.Mac {
		trimmed := strings.TrimPrefix(keyID, ed25519Prefix)

		gotDeviceMAC, decodeErr := decodeMAC(gotMAC)

		if fingerprint, known := devices[trimmed]; known {
			expected, err := calc.CalculateMAC([]byte(fingerprint), infoFor(baseInfo, keyID))
			if err != nil {
				return Result{}, err
			}
			if decodeErr != nil || !crypto.HMACEqual(expected, gotDeviceMAC) {
				return Result{}, ErrKeysMismatch
			}
			result.VerifiedDevices = append(result.VerifiedDevices, trimmed)
			continue
		}

		if masterKey != "" && trimmed == masterKey {
			expected, err := calc.CalculateMAC([]byte(masterKey), infoFor(baseInfo, keyID))
			if err != nil {
				return Result{}, err
			}
			if decodeErr != nil || !crypto.HMACEqual(expected, gotDeviceMAC) {
				return Result{}, ErrKeysMismatch
			}
			result.MasterKeyVerified = true
			continue
		}

		// Unknown key id: forward-compatible, ignore.
	}

	if len(result.VerifiedDevices) == 0 && !result.MasterKeyVerified {
		return Result{}, ErrNoKeysVerified
	}

	sort.Strings(result.VerifiedDevices)
	return result, nil
}

func sortedKeyIDs(m map[string]string) string {
	ids := make([]string, 0, len(m))
	for k := range m {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func infoFor(baseInfo []byte, suffix string) []byte {
	return append(append([]byte{}, baseInfo...), []byte(suffix)...)
}

func encodeMAC(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}

func decodeMAC(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(s)
}
