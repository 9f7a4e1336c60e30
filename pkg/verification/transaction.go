package verification

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pion/logging"

	"github.com/keyward/sasverify/pkg/crypto"
	"github.com/keyward/sasverify/pkg/mac"
	"github.com/keyward/sasverify/pkg/negotiate"
	"github.com/keyward/sasverify/pkg/sasengine"
	"github.com/keyward/sasverify/pkg/shortcode"
)

const (
	sasInfoPrefix = "MATRIX_KEY_VERIFICATION_SAS"
	macInfoPrefix = "MATRIX_KEY_VERIFICATION_MAC"

	shortCodeByteLength = 6
)

// ErrWrongState is wrapped into the cancellation this library performs
// whenever a message or call arrives in a state that does not accept it.
var ErrWrongState = errors.New("verification: operation not valid in current state")

// Config configures a new Transaction. MyEd25519Fingerprint is the local
// device's own Ed25519 key fingerprint; everything else the core needs
// about other devices is read from IdentityStore at attestation time.
type Config struct {
	TransactionID string

	MyUserID             string
	MyDeviceID           string
	MyEd25519Fingerprint string

	OtherUserID   string
	OtherDeviceID string // required for outgoing; learned from Start for incoming

	SupportsEmoji bool

	Transport            Transport
	IdentityStore        IdentityStore
	CrossSigningService  CrossSigningService
	Listeners            []Listener
	LoggerFactory        logging.LoggerFactory
}

// Transaction is one SAS verification between the local device and one
// peer device. It is single-owner: only the methods below ever mutate
// it, and the caller is responsible for serializing calls into a given
// Transaction.
type Transaction struct {
	mu sync.Mutex

	id            string
	myUserID      string
	myDeviceID    string
	myFingerprint string
	otherUserID   string
	otherDeviceID string
	isIncoming    bool
	supportsEmoji bool

	state           State
	cancelledReason CancelCode

	pendingStart *StartMessage
	sentStart    *StartMessage

	accepted         *negotiate.Agreed
	peerCommitment   string

	engine *sasengine.Engine

	shortCodeBytes []byte

	myMAC    *mac.KeyMAC
	theirMAC *mac.KeyMAC
	myMACSent bool

	transport     Transport
	identityStore IdentityStore
	crossSigning  CrossSigningService
	listeners     []Listener
	log           logging.LeveledLogger
}

// NewOutgoing creates a Transaction for the local side that initiates
// verification of a specific peer device.
func NewOutgoing(cfg Config) (*Transaction, error) {
	if cfg.OtherDeviceID == "" {
		return nil, errors.New("verification: OtherDeviceID is required for an outgoing transaction")
	}
	return newTransaction(cfg, false), nil
}

// NewIncoming creates a Transaction for the local side that will respond
// to a verification request from a peer. OtherDeviceID is learned from
// the peer's Start message via OnVerificationStart.
func NewIncoming(cfg Config) *Transaction {
	return newTransaction(cfg, true)
}

func newTransaction(cfg Config, isIncoming bool) *Transaction {
	t := &Transaction{
		id:            cfg.TransactionID,
		myUserID:      cfg.MyUserID,
		myDeviceID:    cfg.MyDeviceID,
		myFingerprint: cfg.MyEd25519Fingerprint,
		otherUserID:   cfg.OtherUserID,
		otherDeviceID: cfg.OtherDeviceID,
		isIncoming:    isIncoming,
		supportsEmoji: cfg.SupportsEmoji,
		state:         StateNone,
		transport:     cfg.Transport,
		identityStore: cfg.IdentityStore,
		crossSigning:  cfg.CrossSigningService,
		listeners:     append([]Listener(nil), cfg.Listeners...),
	}
	if cfg.LoggerFactory != nil {
		t.log = cfg.LoggerFactory.NewLogger("verification")
	}
	return t
}

// ID returns the transaction id.
func (t *Transaction) ID() string {
	return t.id
}

// State returns the current lifecycle state.
func (t *Transaction) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// CancelledReason returns the terminal cancellation code. It is only
// meaningful once State() is Cancelled or OnCancelled.
func (t *Transaction) CancelledReason() CancelCode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelledReason
}

// OtherDeviceID returns the peer device id, which is empty on an incoming
// transaction until the peer's Start message has been processed.
func (t *Transaction) OtherDeviceID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.otherDeviceID
}

// Accepted returns the negotiated algorithm tuple, or nil before it has
// been set. Once non-nil it never changes for the lifetime of the
// Transaction.
func (t *Transaction) Accepted() *negotiate.Agreed {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.accepted == nil {
		return nil
	}
	agreed := *t.accepted
	return &agreed
}

// ShortCode returns the derived short-code bytes, or nil if the short
// code has not yet been derived (state < ShortCodeReady).
func (t *Transaction) ShortCode() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]byte(nil), t.shortCodeBytes...)
}

// Decimal returns the decimal short-code representation. ok is false
// before the short code is derived.
func (t *Transaction) Decimal() (shortcode.Decimal, bool) {
	return shortcode.DecodeDecimal(t.ShortCode())
}

// Emoji returns the emoji short-code representation using table. ok is
// false before the short code is derived.
func (t *Transaction) Emoji(table [64]shortcode.Emoji) ([7]shortcode.Emoji, bool) {
	return shortcode.DecodeEmoji(t.ShortCode(), table)
}

func (t *Transaction) setState(new State) {
	old := t.state
	t.state = new
	listeners := append([]Listener(nil), t.listeners...)
	log := t.log
	self := t
	// Listeners are notified synchronously, but outside of any lock the
	// caller might reasonably take from within OnStateChanged, so we copy
	// what we need and unlock around the call.
	t.mu.Unlock()
	notifyListeners(self, listeners, old, new, log)
	t.mu.Lock()
}

// Start sends the initial m.key.verification.start message. Valid only
// for an outgoing transaction in state None.
func (t *Transaction) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isIncoming || t.state != StateNone {
		return t.cancelWrongState(ctx, "start called in wrong state")
	}

	local := negotiate.Default(t.supportsEmoji)
	start := &StartMessage{
		TransactionID:              t.id,
		FromDevice:                 t.myDeviceID,
		Method:                     Method,
		KeyAgreementProtocols:      local.KeyAgreementProtocols,
		Hashes:                     local.Hashes,
		MessageAuthenticationCodes: local.MessageAuthenticationCodes,
		ShortAuthenticationStrings: local.ShortAuthenticationStrings,
	}

	t.setState(StateSendingStart)
	if err := t.transport.Send(ctx, "m.key.verification.start", start); err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}

	t.sentStart = start
	t.setState(StateStarted)
	return nil
}

// OnVerificationStart handles an inbound Start message. It is the
// dispatcher's entry point for m.key.verification.start: valid only from
// None. Receiving a Start once the transaction has left None cancels
// UnexpectedMessage; a second Start that arrives while still in None
// replaces the pending one.
func (t *Transaction) OnVerificationStart(ctx context.Context, msg *StartMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isIncoming || t.state != StateNone {
		return t.cancelWrongState(ctx, "unexpected start message")
	}

	if err := validateStart(msg); err != nil {
		return t.cancelLocked(ctx, CancelInvalidMessage, err.Error())
	}
	if msg.Method != Method {
		return t.cancelLocked(ctx, CancelUnknownMethod, "unsupported verification method: "+msg.Method)
	}

	t.otherDeviceID = msg.FromDevice
	t.pendingStart = msg
	t.setState(StateNone) // no transition; notify observers a request arrived
	return nil
}

// Accept processes the peer's pending Start message: negotiates
// algorithms, computes the commitment, and sends Accept. Valid only for
// an incoming transaction that has a pending Start (state None).
func (t *Transaction) Accept(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isIncoming || t.state != StateNone || t.pendingStart == nil {
		return t.cancelWrongState(ctx, "accept called without a pending start")
	}

	peerOffer := negotiate.Capabilities{
		KeyAgreementProtocols:      t.pendingStart.KeyAgreementProtocols,
		Hashes:                     t.pendingStart.Hashes,
		MessageAuthenticationCodes: t.pendingStart.MessageAuthenticationCodes,
		ShortAuthenticationStrings: t.pendingStart.ShortAuthenticationStrings,
	}
	agreed, err := negotiate.Negotiate(negotiate.Default(t.supportsEmoji), peerOffer)
	if err != nil {
		return t.cancelLocked(ctx, CancelUnknownMethod, err.Error())
	}

	engine, err := sasengine.New(sasengine.Method(agreed.MessageAuthenticationCode))
	if err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}
	myPub, err := engine.PublicKey()
	if err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}

	commitment, err := computeCommitment(t.pendingStart, myPub)
	if err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}

	accept := &AcceptMessage{
		TransactionID:              t.id,
		KeyAgreementProtocol:       agreed.KeyAgreementProtocol,
		Hash:                       agreed.Hash,
		MessageAuthenticationCode:  agreed.MessageAuthenticationCode,
		ShortAuthenticationStrings: agreed.ShortAuthenticationStrings,
		Commitment:                 commitment,
	}

	t.setState(StateSendingAccept)
	if err := t.transport.Send(ctx, "m.key.verification.accept", accept); err != nil {
		engine.Release()
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}

	t.accepted = &agreed
	t.engine = engine
	t.setState(StateAccepted)
	return nil
}

// OnVerificationAccept processes the peer's Accept message. Valid only
// for an outgoing transaction in state Started.
func (t *Transaction) OnVerificationAccept(ctx context.Context, msg *AcceptMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isIncoming || t.state != StateStarted {
		return t.cancelWrongState(ctx, "unexpected accept message")
	}

	local := negotiate.Default(t.supportsEmoji)
	if !contains(local.KeyAgreementProtocols, msg.KeyAgreementProtocol) ||
		!contains(local.Hashes, msg.Hash) ||
		!contains(local.MessageAuthenticationCodes, msg.MessageAuthenticationCode) ||
		!subset(msg.ShortAuthenticationStrings, local.ShortAuthenticationStrings) {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, "accept chose an algorithm we did not offer")
	}

	agreed := negotiate.Agreed{
		KeyAgreementProtocol:       msg.KeyAgreementProtocol,
		Hash:                       msg.Hash,
		MessageAuthenticationCode:  msg.MessageAuthenticationCode,
		ShortAuthenticationStrings: msg.ShortAuthenticationStrings,
	}

	engine, err := sasengine.New(sasengine.Method(agreed.MessageAuthenticationCode))
	if err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}
	myPub, err := engine.PublicKey()
	if err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}

	key := &KeyMessage{TransactionID: t.id, Key: myPub}

	t.setState(StateSendingKey)
	if err := t.transport.Send(ctx, "m.key.verification.key", key); err != nil {
		engine.Release()
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}

	t.accepted = &agreed
	t.peerCommitment = msg.Commitment
	t.engine = engine
	t.setState(StateKeySent)
	return nil
}

// OnKeyVerificationKey processes the peer's ephemeral public key. On the
// outgoing side (state KeySent) it additionally verifies the commitment
// the responder published in Accept, since only the initiator can check
// that the responder's revealed key matches what it committed to before
// either side had seen the other's key.
func (t *Transaction) OnKeyVerificationKey(ctx context.Context, msg *KeyMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case !t.isIncoming && t.state == StateKeySent:
		if err := t.verifyCommitment(msg.Key); err != nil {
			return t.cancelLocked(ctx, CancelMismatchedCommitment, err.Error())
		}
		if err := t.engine.SetTheirPublicKey(msg.Key); err != nil {
			return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
		}
		if err := t.deriveShortCode(); err != nil {
			return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
		}
		t.setState(StateShortCodeReady)
		return nil

	case t.isIncoming && t.state == StateAccepted:
		if err := t.engine.SetTheirPublicKey(msg.Key); err != nil {
			return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
		}

		myPub, err := t.engine.PublicKey()
		if err != nil {
			return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
		}
		reply := &KeyMessage{TransactionID: t.id, Key: myPub}
		if err := t.transport.Send(ctx, "m.key.verification.key", reply); err != nil {
			return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
		}

		if err := t.deriveShortCode(); err != nil {
			return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
		}
		t.setState(StateShortCodeReady)
		return nil

	default:
		return t.cancelWrongState(ctx, "unexpected key message")
	}
}

// OnKeyVerificationMac stores the peer's key attestation. If the local
// side has already sent its own MAC, verification runs immediately;
// otherwise it is deferred until UserHasVerifiedShortCode sends ours,
// per the tolerated early-arrival ordering.
func (t *Transaction) OnKeyVerificationMac(ctx context.Context, msg *MacMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateShortCodeReady, StateShortCodeAccepted, StateSendingMac, StateMacSent:
	default:
		return t.cancelWrongState(ctx, "unexpected mac message")
	}

	t.theirMAC = &mac.KeyMAC{Mac: msg.Mac, Keys: msg.Keys}

	if t.myMACSent {
		return t.runVerificationLocked(ctx)
	}
	return nil
}

// UserHasVerifiedShortCode records that the local user confirmed the two
// rendered short codes match, computes and sends the local MAC, and runs
// verification immediately if the peer's MAC already arrived.
func (t *Transaction) UserHasVerifiedShortCode(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateShortCodeReady {
		return t.cancelWrongState(ctx, "short code not ready for confirmation")
	}
	t.setState(StateShortCodeAccepted)

	baseInfo := t.macBaseInfo(t.myUserID, t.myDeviceID, t.otherUserID, t.otherDeviceID)

	var cs *mac.CrossSigning
	if t.identityStore != nil {
		info, err := t.identityStore.MyCrossSigning(ctx)
		if err != nil && t.log != nil {
			t.log.Warnf("verification: MyCrossSigning failed: %v", err)
		}
		if info != nil {
			cs = &mac.CrossSigning{MasterPublicKey: info.MasterPublicKey, Trusted: info.Trusted}
		}
	}

	myMAC, err := mac.Produce(t.engine, baseInfo, t.myDeviceID, t.myFingerprint, cs)
	if err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}
	t.myMAC = &myMAC

	if err := t.transport.CreateMac(ctx, t.id, myMAC.Mac, myMAC.Keys); err != nil && t.log != nil {
		t.log.Warnf("verification: CreateMac failed: %v", err)
	}

	t.setState(StateSendingMac)
	if err := t.transport.Send(ctx, "m.key.verification.mac", &MacMessage{TransactionID: t.id, Mac: myMAC.Mac, Keys: myMAC.Keys}); err != nil {
		return t.cancelLocked(ctx, CancelUnexpectedMessage, err.Error())
	}
	t.myMACSent = true
	t.setState(StateMacSent)

	if t.theirMAC != nil {
		return t.runVerificationLocked(ctx)
	}
	return nil
}

// runVerificationLocked performs §4.5 MAC verification. Caller must hold t.mu.
func (t *Transaction) runVerificationLocked(ctx context.Context) error {
	t.setState(StateVerifying)

	devices := make(map[string]string)
	var masterKey string
	if t.identityStore != nil {
		infos, err := t.identityStore.DevicesOf(ctx, t.otherUserID)
		if err != nil && t.log != nil {
			t.log.Warnf("verification: DevicesOf failed: %v", err)
		}
		for id, info := range infos {
			devices[id] = info.Ed25519Fingerprint
		}
		cs, err := t.identityStore.CrossSigningOf(ctx, t.otherUserID)
		if err != nil && t.log != nil {
			t.log.Warnf("verification: CrossSigningOf failed: %v", err)
		}
		if cs != nil {
			masterKey = cs.MasterPublicKey
		}
	}

	baseInfo := t.macBaseInfo(t.otherUserID, t.otherDeviceID, t.myUserID, t.myDeviceID)
	result, err := mac.Verify(t.engine, baseInfo, *t.theirMAC, devices, masterKey)
	if err != nil {
		return t.cancelLocked(ctx, CancelMismatchedKeys, err.Error())
	}

	for _, deviceID := range result.VerifiedDevices {
		if t.identityStore == nil {
			continue
		}
		if err := t.identityStore.MarkDeviceVerified(ctx, t.otherUserID, deviceID); err != nil && t.log != nil {
			t.log.Warnf("verification: MarkDeviceVerified(%s) failed: %v", deviceID, err)
		}
	}

	if t.crossSigning != nil && (result.MasterKeyVerified || t.otherUserID == t.myUserID) {
		go t.fireAndForgetCrossSigning()
	}

	if err := t.transport.Done(ctx, t.id); err != nil && t.log != nil {
		t.log.Warnf("verification: Done failed: %v", err)
	}

	t.engine.Release()
	t.setState(StateVerified)
	return nil
}

// fireAndForgetCrossSigning requests the cross-signing elevation that a
// successful MAC check implies: signing the peer's device when the peer is
// the local user, otherwise trusting the peer user whose master key was
// verified. Failures are logged, never reflected back
// into transaction state, per the fire-and-forget contract in §4.5/§7.
func (t *Transaction) fireAndForgetCrossSigning() {
	ctx := context.Background()
	if t.otherUserID == t.myUserID {
		if err := t.crossSigning.SignDevice(ctx, t.otherDeviceID); err != nil && t.log != nil {
			t.log.Warnf("verification: SignDevice failed: %v", err)
		}
		return
	}
	if err := t.crossSigning.TrustUser(ctx, t.otherUserID); err != nil && t.log != nil {
		t.log.Warnf("verification: TrustUser failed: %v", err)
	}
}

// ShortCodeDoesNotMatch cancels the transaction with MismatchedSas. Valid
// any time before Verified.
func (t *Transaction) ShortCodeDoesNotMatch(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateVerified || t.state.IsTerminal() {
		return t.cancelWrongState(ctx, "already terminal")
	}
	return t.cancelLocked(ctx, CancelMismatchedSas, "user reported mismatched short code")
}

// Cancel cancels the transaction with the given code. It is idempotent:
// a second call is a no-op that preserves the first code.
func (t *Transaction) Cancel(ctx context.Context, code CancelCode, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelLocked(ctx, code, reason)
}

// cancelLocked performs the cancellation side effects: idempotent state
// transition, engine release, and a best-effort peer notification.
// Caller must hold t.mu. It always returns a non-nil error describing the
// cancellation, for convenient `return t.cancelLocked(...)` call sites.
func (t *Transaction) cancelLocked(ctx context.Context, code CancelCode, reason string) error {
	if t.state.IsTerminal() {
		return fmt.Errorf("verification: cancelled: %s: %s", t.cancelledReason, reason)
	}

	t.cancelledReason = code
	if t.engine != nil {
		t.engine.Release()
	}

	if t.transport != nil {
		if err := t.transport.CancelTransaction(ctx, t.id, t.otherUserID, t.otherDeviceID, code, reason); err != nil && t.log != nil {
			t.log.Warnf("verification: CancelTransaction failed: %v", err)
		}
	}

	t.setState(StateCancelled)
	return fmt.Errorf("verification: cancelled: %s: %s", code, reason)
}

// cancelWrongState cancels with CancelUnexpectedMessage for the specific
// case of a call or message arriving in a state that does not accept it,
// wrapping ErrWrongState into the returned error so callers can detect this
// class of failure with errors.Is. Caller must hold t.mu.
func (t *Transaction) cancelWrongState(ctx context.Context, detail string) error {
	cancelErr := t.cancelLocked(ctx, CancelUnexpectedMessage, detail)
	return fmt.Errorf("%w: %v", ErrWrongState, cancelErr)
}

// OnVerificationCancel handles a cancellation sent by the peer, which is
// tracked as OnCancelled rather than Cancelled so observers can
// distinguish locally-initiated cancellation from peer-initiated.
func (t *Transaction) OnVerificationCancel(ctx context.Context, msg *CancelMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.IsTerminal() {
		return nil
	}
	t.cancelledReason = msg.Code
	if t.engine != nil {
		t.engine.Release()
	}
	t.setState(StateOnCancelled)
	return nil
}

// AcceptVerificationEvent is the single dispatch entry point external
// code should call for every inbound verification message. It decodes
// the event type and routes to the matching handler; an unrecognized
// type is silently ignored, per the forward-compatibility rule.
func (t *Transaction) AcceptVerificationEvent(ctx context.Context, eventType string, payload json.RawMessage) error {
	switch eventType {
	case "m.key.verification.start":
		var msg StartMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return t.Cancel(ctx, CancelInvalidMessage, err.Error())
		}
		return t.OnVerificationStart(ctx, &msg)
	case "m.key.verification.accept":
		var msg AcceptMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return t.Cancel(ctx, CancelInvalidMessage, err.Error())
		}
		return t.OnVerificationAccept(ctx, &msg)
	case "m.key.verification.key":
		var msg KeyMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return t.Cancel(ctx, CancelInvalidMessage, err.Error())
		}
		return t.OnKeyVerificationKey(ctx, &msg)
	case "m.key.verification.mac":
		var msg MacMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return t.Cancel(ctx, CancelInvalidMessage, err.Error())
		}
		return t.OnKeyVerificationMac(ctx, &msg)
	case "m.key.verification.cancel":
		var msg CancelMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return t.Cancel(ctx, CancelInvalidMessage, err.Error())
		}
		return t.OnVerificationCancel(ctx, &msg)
	default:
		return nil
	}
}

// deriveShortCode computes the 6 short-code bytes: the leading bytes of the
// engine's MAC over an empty message under the SAS info string. Caller must
// hold t.mu and have already established the shared secret via
// SetTheirPublicKey.
func (t *Transaction) deriveShortCode() error {
	info := t.sasInfo()
	b, err := t.engine.CalculateMAC(nil, info)
	if err != nil {
		return err
	}
	t.shortCodeBytes = append([]byte(nil), b[:shortCodeByteLength]...)
	return nil
}

// sasInfo builds the SAS derivation info string with the initiator's
// identity first, regardless of which side is computing it.
func (t *Transaction) sasInfo() []byte {
	initUser, initDevice, respUser, respDevice := t.initiatorFirst()
	return []byte(sasInfoPrefix + initUser + initDevice + respUser + respDevice + t.id)
}

// macBaseInfo builds the MAC base info string for one direction:
// senderUser/Device identify whoever produced the MAC being computed.
func (t *Transaction) macBaseInfo(senderUser, senderDevice, receiverUser, receiverDevice string) []byte {
	return []byte(macInfoPrefix + senderUser + senderDevice + receiverUser + receiverDevice + t.id)
}

// initiatorFirst returns (initiatorUser, initiatorDevice, responderUser, responderDevice).
func (t *Transaction) initiatorFirst() (string, string, string, string) {
	if t.isIncoming {
		return t.otherUserID, t.otherDeviceID, t.myUserID, t.myDeviceID
	}
	return t.myUserID, t.myDeviceID, t.otherUserID, t.otherDeviceID
}

// verifyCommitment checks that the responder's revealed key matches the
// commitment it published in Accept, computed over the initiator's own
// sent Start payload. Caller must hold t.mu.
func (t *Transaction) verifyCommitment(responderKey string) error {
	expected, err := computeCommitment(t.sentStart, responderKey)
	if err != nil {
		return err
	}
	if expected != t.peerCommitment {
		return errors.New("commitment does not match responder's revealed key")
	}
	return nil
}

// computeCommitment hashes the canonical Start payload concatenated with
// a public key, base64 encoding the SHA-256 digest.
func computeCommitment(start *StartMessage, publicKeyBase64 string) (string, error) {
	canonical, err := json.Marshal(start)
	if err != nil {
		return "", err
	}
	h := crypto.NewSHA256()
	h.Write(canonical)
	h.Write([]byte(publicKeyBase64))
	return base64.RawStdEncoding.EncodeToString(h.Sum(nil)), nil
}

func validateStart(msg *StartMessage) error {
	if msg.TransactionID == "" || msg.FromDevice == "" || msg.Method == "" {
		return errors.New("verification: start message missing required fields")
	}
	if len(msg.KeyAgreementProtocols) == 0 || len(msg.Hashes) == 0 ||
		len(msg.MessageAuthenticationCodes) == 0 || len(msg.ShortAuthenticationStrings) == 0 {
		return errors.New("verification: start message missing algorithm lists")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func subset(small, big []string) bool {
	for _, v := range small {
		if !contains(big, v) {
			return false
		}
	}
	return true
}
