package mac

import "testing"

// fakeCalculator is a deterministic stand-in for the SAS engine: the "MAC"
// of a message under an info string is just their concatenation. This
// lets tests assert exact matching behavior without real crypto.
type fakeCalculator struct{}

func (fakeCalculator) CalculateMAC(message, info []byte) ([]byte, error) {
	out := make([]byte, 0, len(message)+len(info)+1)
	out = append(out, message...)
	out = append(out, '|')
	out = append(out, info...)
	return out, nil
}

func TestProduceThenVerifyRoundTrips(t *testing.T) {
	calc := fakeCalculator{}
	baseInfo := []byte("MATRIX_KEY_VERIFICATION_MAC@a:x DA@b:x DBT1")

	produced, err := Produce(calc, baseInfo, "DA", "fingerprint-DA", nil)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}

	devices := map[string]string{"DA": "fingerprint-DA"}
	result, err := Verify(calc, baseInfo, produced, devices, "")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(result.VerifiedDevices) != 1 || result.VerifiedDevices[0] != "DA" {
		t.Fatalf("expected DA verified, got %+v", result)
	}
	if result.MasterKeyVerified {
		t.Fatalf("did not expect master key verified")
	}
}

func TestProduceIncludesMasterKeyWhenTrusted(t *testing.T) {
	calc := fakeCalculator{}
	baseInfo := []byte("base")
	cs := &CrossSigning{MasterPublicKey: "master-pub", Trusted: true}

	produced, err := Produce(calc, baseInfo, "DA", "fingerprint-DA", cs)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	if len(produced.Mac) != 2 {
		t.Fatalf("expected 2 entries (device + master), got %d", len(produced.Mac))
	}

	result, err := Verify(calc, baseInfo, produced, map[string]string{"DA": "fingerprint-DA"}, "master-pub")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !result.MasterKeyVerified {
		t.Fatalf("expected master key verified")
	}
}

func TestProduceOmitsMasterKeyWhenNotTrusted(t *testing.T) {
	calc := fakeCalculator{}
	cs := &CrossSigning{MasterPublicKey: "master-pub", Trusted: false}

	produced, err := Produce(calc, []byte("base"), "DA", "fingerprint-DA", cs)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	if len(produced.Mac) != 1 {
		t.Fatalf("expected only device key, got %d entries", len(produced.Mac))
	}
}

func TestVerifyRejectsTamperedKeysMAC(t *testing.T) {
	calc := fakeCalculator{}
	baseInfo := []byte("base")
	produced, err := Produce(calc, baseInfo, "DA", "fingerprint-DA", nil)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	produced.Keys = "tampered"

	if _, err := Verify(calc, baseInfo, produced, map[string]string{"DA": "fingerprint-DA"}, ""); err != ErrKeysMismatch {
		t.Fatalf("expected ErrKeysMismatch, got %v", err)
	}
}

func TestVerifyRejectsTamperedDeviceMAC(t *testing.T) {
	calc := fakeCalculator{}
	baseInfo := []byte("base")
	produced, err := Produce(calc, baseInfo, "DA", "fingerprint-DA", nil)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	produced.Mac["ed25519:DA"] = "tampered"

	if _, err := Verify(calc, baseInfo, produced, map[string]string{"DA": "fingerprint-DA"}, ""); err != ErrKeysMismatch {
		t.Fatalf("expected ErrKeysMismatch, got %v", err)
	}
}

func TestVerifyFailsWhenNothingRecognized(t *testing.T) {
	calc := fakeCalculator{}
	baseInfo := []byte("base")
	produced, err := Produce(calc, baseInfo, "DA", "fingerprint-DA", nil)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}

	// No known devices and no matching master key: unknown key id should
	// be ignored, but with nothing verified overall, this must fail.
	if _, err := Verify(calc, baseInfo, produced, map[string]string{}, ""); err != ErrNoKeysVerified {
		t.Fatalf("expected ErrNoKeysVerified, got %v", err)
	}
}

func TestVerifyIgnoresUnknownKeyIDsAlongsideAKnownOne(t *testing.T) {
	calc := fakeCalculator{}
	baseInfo := []byte("base")
	produced, err := Produce(calc, baseInfo, "DA", "fingerprint-DA", nil)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}

	// Inject an unrecognized key id/mac pair that isn't part of the
	// original keys digest input; Verify must still succeed on DA and
	// simply ignore the unknown entry rather than erroring.
	extended := KeyMAC{Mac: map[string]string{}, Keys: produced.Keys}
	for k, v := range produced.Mac {
		extended.Mac[k] = v
	}
	extended.Mac["ed25519:UNKNOWN"] = "whatever"

	// Recompute Keys over the sorted ids that now includes UNKNOWN, since
	// Verify recomputes keys MAC from the received map, not the original.
	calc2 := fakeCalculator{}
	newKeys, err := calc2.CalculateMAC([]byte("ed25519:DA,ed25519:UNKNOWN"), append(append([]byte{}, baseInfo...), []byte("KEY_IDS")...))
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}
	extended.Keys = base64RawStd(newKeys)

	result, err := Verify(calc, baseInfo, extended, map[string]string{"DA": "fingerprint-DA"}, "")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(result.VerifiedDevices) != 1 || result.VerifiedDevices[0] != "DA" {
		t.Fatalf("expected only DA verified, got %+v", result)
	}
}

func base64RawStd(b []byte) string {
	return encodeMAC(b)
}
