package verification

// CancelCode is the flat, exhaustive taxonomy of reasons a transaction can
// be cancelled. Every externally observable failure maps to exactly one
// of these, and the string form is what goes on the wire.
type CancelCode string

const (
	// CancelUser is a manual cancellation requested by the local user.
	CancelUser CancelCode = "m.user"

	// CancelUnexpectedMessage covers a message that arrived in a state
	// that does not accept it, or an algorithm choice unreachable after
	// negotiation.
	CancelUnexpectedMessage CancelCode = "m.unexpected_message"

	// CancelUnknownMethod is sent when the peer offers a method or
	// algorithm set this core cannot negotiate a common choice for.
	CancelUnknownMethod CancelCode = "m.unknown_method"

	// CancelMismatchedCommitment covers a responder's revealed key that
	// does not hash-bind to the commitment it published in Accept.
	CancelMismatchedCommitment CancelCode = "m.mismatched_commitment"

	// CancelMismatchedSas is a manual signal that the two rendered short
	// codes did not match when compared out of band.
	CancelMismatchedSas CancelCode = "m.mismatched_sas"

	// CancelMismatchedKeys covers any MAC attestation failure: a keys
	// digest mismatch, a per-key MAC mismatch, or no attestable key.
	CancelMismatchedKeys CancelCode = "m.mismatched_keys"

	// CancelTimeout covers a transaction that lingered too long in a
	// non-terminal state before the user acted.
	CancelTimeout CancelCode = "m.timeout"

	// CancelInvalidMessage covers a message that failed structural
	// validation (missing required fields).
	CancelInvalidMessage CancelCode = "m.invalid_message"

	// CancelAccepted covers a transaction cancelled because it was
	// already satisfied by a concurrent verification path.
	CancelAccepted CancelCode = "m.accepted"
)
