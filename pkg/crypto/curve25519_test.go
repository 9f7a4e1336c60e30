package crypto

import (
	"bytes"
	"testing"
)

func TestCurve25519KeyAgreement(t *testing.T) {
	alice, err := Curve25519GenerateKey(nil)
	if err != nil {
		t.Fatalf("Curve25519GenerateKey(alice) failed: %v", err)
	}
	bob, err := Curve25519GenerateKey(nil)
	if err != nil {
		t.Fatalf("Curve25519GenerateKey(bob) failed: %v", err)
	}

	aliceSecret, err := alice.SharedSecret(bob.PublicKey[:])
	if err != nil {
		t.Fatalf("alice.SharedSecret failed: %v", err)
	}
	bobSecret, err := bob.SharedSecret(alice.PublicKey[:])
	if err != nil {
		t.Fatalf("bob.SharedSecret failed: %v", err)
	}

	if !bytes.Equal(aliceSecret, bobSecret) {
		t.Fatalf("shared secrets do not match:\nalice: %x\nbob:   %x", aliceSecret, bobSecret)
	}
}

func TestCurve25519SharedSecretRejectsShortKey(t *testing.T) {
	kp, err := Curve25519GenerateKey(nil)
	if err != nil {
		t.Fatalf("Curve25519GenerateKey failed: %v", err)
	}

	if _, err := kp.SharedSecret([]byte{1, 2, 3}); err != ErrInvalidPublicKey {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
}

func TestCurve25519ZeroClearsPrivateKey(t *testing.T) {
	kp, err := Curve25519GenerateKey(nil)
	if err != nil {
		t.Fatalf("Curve25519GenerateKey failed: %v", err)
	}

	kp.Zero()

	var zero [Curve25519KeySize]byte
	if kp.PrivateKey != zero {
		t.Fatalf("expected private key to be zeroed")
	}
}
