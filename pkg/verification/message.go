package verification

// Method identifies the verification method a Start message proposes.
// This core implements exactly one.
const Method = "m.sas.v1"

// StartMessage is m.key.verification.start: sent by the party proposing a
// SAS verification, describing the local device and every algorithm list
// it is willing to negotiate over.
type StartMessage struct {
	TransactionID              string   `json:"transaction_id"`
	FromDevice                 string   `json:"from_device"`
	Method                     string   `json:"method"`
	KeyAgreementProtocols      []string `json:"key_agreement_protocols"`
	Hashes                     []string `json:"hashes"`
	MessageAuthenticationCodes []string `json:"message_authentication_codes"`
	ShortAuthenticationStrings []string `json:"short_authentication_strings"`
}

// AcceptMessage is m.key.verification.accept: the responder's reply,
// binding one algorithm from each of the Start message's algorithm lists,
// the agreed set of short-code representations, and a commitment over the
// Start payload and the responder's public key.
type AcceptMessage struct {
	TransactionID              string   `json:"transaction_id"`
	KeyAgreementProtocol       string   `json:"key_agreement_protocol"`
	Hash                       string   `json:"hash"`
	MessageAuthenticationCode  string   `json:"message_authentication_code"`
	ShortAuthenticationStrings []string `json:"short_authentication_strings"`
	Commitment                 string   `json:"commitment"`
}

// KeyMessage is m.key.verification.key: carries one side's ephemeral
// Curve25519 public key, unpadded base64 encoded.
type KeyMessage struct {
	TransactionID string `json:"transaction_id"`
	Key           string `json:"key"`
}

// MacMessage is m.key.verification.mac: carries the sender's key
// attestation, one MAC per attested key id plus a MAC over the sorted
// list of those ids.
type MacMessage struct {
	TransactionID string            `json:"transaction_id"`
	Mac           map[string]string `json:"mac"`
	Keys          string            `json:"keys"`
}

// CancelMessage is m.key.verification.cancel: sent by either side to
// abort the transaction, locally or in response to a local cancellation.
type CancelMessage struct {
	TransactionID string     `json:"transaction_id"`
	Code          CancelCode `json:"code"`
	Reason        string     `json:"reason"`
}

// DoneMessage is m.key.verification.done: sent once a side has finished
// processing a successful verification.
type DoneMessage struct {
	TransactionID string `json:"transaction_id"`
}
