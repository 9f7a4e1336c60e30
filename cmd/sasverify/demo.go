package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/pion/logging"

	"github.com/keyward/sasverify/pkg/verification"
)

type demoCmd struct {
	Emoji bool `help:"Negotiate emoji short codes alongside decimal."`
}

// wireMsg is one queued verification message awaiting delivery.
type wireMsg struct {
	msgType string
	payload []byte
}

// queueTransport is a verification.Transport that queues outbound
// messages instead of touching a socket; pumpUntilIdle delivers them.
type queueTransport struct {
	mu     sync.Mutex
	name   string
	outbox []wireMsg
}

func (q *queueTransport) Send(ctx context.Context, msgType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	fmt.Printf("  [%s -> ] %s\n", q.name, msgType)
	q.mu.Lock()
	q.outbox = append(q.outbox, wireMsg{msgType, b})
	q.mu.Unlock()
	return nil
}

func (q *queueTransport) CancelTransaction(ctx context.Context, txID, otherUserID, otherDeviceID string, code verification.CancelCode, reason string) error {
	fmt.Printf("  [%s] cancelling: %s (%s)\n", q.name, code, reason)
	b, err := json.Marshal(&verification.CancelMessage{TransactionID: txID, Code: code, Reason: reason})
	if err != nil {
		return err
	}
	q.mu.Lock()
	q.outbox = append(q.outbox, wireMsg{"m.key.verification.cancel", b})
	q.mu.Unlock()
	return nil
}

func (q *queueTransport) Done(ctx context.Context, txID string) error {
	b, err := json.Marshal(&verification.DoneMessage{TransactionID: txID})
	if err != nil {
		return err
	}
	fmt.Printf("  [%s -> ] m.key.verification.done\n", q.name)
	q.mu.Lock()
	q.outbox = append(q.outbox, wireMsg{"m.key.verification.done", b})
	q.mu.Unlock()
	return nil
}

func (q *queueTransport) CreateMac(ctx context.Context, txID string, keyMap map[string]string, keysMAC string) error {
	return nil
}

func (q *queueTransport) drain() []wireMsg {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.outbox
	q.outbox = nil
	return out
}

// memIdentityStore is a process-local catalog of device fingerprints,
// standing in for the homeserver-backed store a real client would use.
type memIdentityStore struct {
	name     string
	devices  map[string]map[string]verification.DeviceInfo
	verified map[string]map[string]bool
}

func newMemIdentityStore(name string) *memIdentityStore {
	return &memIdentityStore{
		name:     name,
		devices:  make(map[string]map[string]verification.DeviceInfo),
		verified: make(map[string]map[string]bool),
	}
}

func (m *memIdentityStore) DevicesOf(ctx context.Context, userID string) (map[string]verification.DeviceInfo, error) {
	return m.devices[userID], nil
}

func (m *memIdentityStore) CrossSigningOf(ctx context.Context, userID string) (*verification.CrossSigningInfo, error) {
	return nil, nil
}

func (m *memIdentityStore) MyCrossSigning(ctx context.Context) (*verification.CrossSigningInfo, error) {
	return nil, nil
}

func (m *memIdentityStore) MarkDeviceVerified(ctx context.Context, userID, deviceID string) error {
	if m.verified[userID] == nil {
		m.verified[userID] = make(map[string]bool)
	}
	m.verified[userID][deviceID] = true
	fmt.Printf("  [%s] marked %s/%s verified\n", m.name, userID, deviceID)
	return nil
}

type noopCrossSigning struct{}

func (noopCrossSigning) TrustUser(ctx context.Context, userID string) error  { return nil }
func (noopCrossSigning) SignDevice(ctx context.Context, deviceID string) error { return nil }

// pumpUntilIdle bounces queued messages between the two sides until
// neither has anything left to deliver.
func pumpUntilIdle(ctx context.Context, alice, bob *verification.Transaction, aliceT, bobT *queueTransport) {
	for i := 0; i < 50; i++ {
		progressed := false
		for _, m := range aliceT.drain() {
			progressed = true
			bob.AcceptVerificationEvent(ctx, m.msgType, m.payload)
		}
		for _, m := range bobT.drain() {
			progressed = true
			alice.AcceptVerificationEvent(ctx, m.msgType, m.payload)
		}
		if !progressed {
			return
		}
	}
}

func (cmd *demoCmd) Run(_ *kong.Context) error {
	ctx := context.Background()
	loggerFactory := logging.NewDefaultLoggerFactory()

	const (
		aliceUser = "@alice:example.org"
		aliceDev  = "ALICEDEVICE"
		bobUser   = "@bob:example.org"
		bobDev    = "BOBDEVICE"
	)

	aliceStore := newMemIdentityStore("alice")
	aliceStore.devices[bobUser] = map[string]verification.DeviceInfo{bobDev: {Ed25519Fingerprint: "bob-ed25519-fingerprint"}}
	bobStore := newMemIdentityStore("bob")
	bobStore.devices[aliceUser] = map[string]verification.DeviceInfo{aliceDev: {Ed25519Fingerprint: "alice-ed25519-fingerprint"}}

	aliceT := &queueTransport{name: "alice"}
	bobT := &queueTransport{name: "bob"}

	alice, err := verification.NewOutgoing(verification.Config{
		TransactionID:        "DEMO1",
		MyUserID:             aliceUser,
		MyDeviceID:           aliceDev,
		MyEd25519Fingerprint: "alice-ed25519-fingerprint",
		OtherUserID:          bobUser,
		OtherDeviceID:        bobDev,
		SupportsEmoji:        cmd.Emoji,
		Transport:            aliceT,
		IdentityStore:        aliceStore,
		CrossSigningService:  noopCrossSigning{},
		LoggerFactory:        loggerFactory,
	})
	if err != nil {
		return err
	}

	bob := verification.NewIncoming(verification.Config{
		TransactionID:        "DEMO1",
		MyUserID:             bobUser,
		MyDeviceID:           bobDev,
		MyEd25519Fingerprint: "bob-ed25519-fingerprint",
		OtherUserID:          aliceUser,
		SupportsEmoji:        cmd.Emoji,
		Transport:            bobT,
		IdentityStore:        bobStore,
		CrossSigningService:  noopCrossSigning{},
		LoggerFactory:        loggerFactory,
	})

	fmt.Println("alice starts verification of bob's device")
	if err := alice.Start(ctx); err != nil {
		return err
	}
	pumpUntilIdle(ctx, alice, bob, aliceT, bobT)

	fmt.Println("bob accepts")
	if err := bob.Accept(ctx); err != nil {
		return err
	}
	pumpUntilIdle(ctx, alice, bob, aliceT, bobT)

	decimal, ok := alice.Decimal()
	if !ok {
		return fmt.Errorf("short code not derived")
	}
	fmt.Printf("short code (alice): %s\n", decimal)
	if bobDecimal, ok := bob.Decimal(); ok {
		fmt.Printf("short code (bob):   %s\n", bobDecimal)
	}

	fmt.Println("both users confirm the short code matches")
	if err := bob.UserHasVerifiedShortCode(ctx); err != nil {
		return err
	}
	pumpUntilIdle(ctx, alice, bob, aliceT, bobT)
	if err := alice.UserHasVerifiedShortCode(ctx); err != nil {
		return err
	}
	pumpUntilIdle(ctx, alice, bob, aliceT, bobT)

	fmt.Printf("final state: alice=%s bob=%s\n", alice.State(), bob.State())
	return nil
}
