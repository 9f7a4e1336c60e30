package verification

import "context"

// Transport is the external channel a Transaction sends verification
// messages over and asks to notify the peer of cancellation or
// completion. The core never touches a socket directly; every send is
// funneled through this interface so it can run over an end-to-end
// encrypted room, a direct device channel, or an in-memory test bus.
//
// Send may block (it is one of the three suspension points this core
// permits, per the concurrency model); the state machine advances only
// after Send returns successfully.
type Transport interface {
	// Send delivers one verification message. msgType is the `m.key.verification.*`
	// event type; payload is the corresponding *Message struct.
	Send(ctx context.Context, msgType string, payload any) error

	// CancelTransaction notifies the peer that the local side is
	// cancelling, then lets the transport perform any bookkeeping (e.g.
	// tearing down a session) it needs for the given code.
	CancelTransaction(ctx context.Context, txID, otherUserID, otherDeviceID string, code CancelCode, reason string) error

	// Done notifies the peer that this side has finished processing a
	// successful verification.
	Done(ctx context.Context, txID string) error

	// CreateMac is called once the local key attestation has been
	// computed, before the Mac message is sent, so the surrounding
	// system can persist it independently of message delivery.
	CreateMac(ctx context.Context, txID string, keyMap map[string]string, keysMAC string) error
}

// DeviceInfo is the subset of a peer device's identity the core needs:
// enough to recompute the MAC it should see for that device.
type DeviceInfo struct {
	Ed25519Fingerprint string
}

// CrossSigningInfo is a user's cross-signing identity: a master public key
// and whether the local side currently trusts it.
type CrossSigningInfo struct {
	MasterPublicKey string
	Trusted         bool
}

// IdentityStore is the read-only catalog of known device and cross-signing
// keys the core consults during MAC attestation, and the single write
// operation attestation success triggers: marking a device verified.
type IdentityStore interface {
	DevicesOf(ctx context.Context, userID string) (map[string]DeviceInfo, error)
	CrossSigningOf(ctx context.Context, userID string) (*CrossSigningInfo, error)
	MyCrossSigning(ctx context.Context) (*CrossSigningInfo, error)
	MarkDeviceVerified(ctx context.Context, userID, deviceID string) error
}

// CrossSigningService performs the two attestation-elevation operations a
// successful MAC verification can trigger. Both are fire-and-forget from
// the transaction's point of view: failures are logged by the caller and
// never flip a Verified transaction back out of that state.
type CrossSigningService interface {
	TrustUser(ctx context.Context, userID string) error
	SignDevice(ctx context.Context, deviceID string) error
}
