// Package negotiate intersects a local device's supported SAS algorithms
// with a peer's offered lists to produce the single agreed tuple used for
// the rest of a verification, or reports that no compatible choice exists.
package negotiate

import "errors"

// ErrNoAgreement is returned when one of the four negotiated fields has an
// empty intersection between local and peer preferences. The caller maps
// this to the UnknownMethod cancellation code.
var ErrNoAgreement = errors.New("negotiate: no common algorithm")

// Capabilities is one side's prioritized, ordered list of supported
// algorithms for each negotiated field. Order encodes preference: earlier
// entries are preferred.
type Capabilities struct {
	KeyAgreementProtocols      []string
	Hashes                     []string
	MessageAuthenticationCodes []string
	ShortAuthenticationStrings []string
}

// Default returns the capability set this implementation supports.
// EMOJI is included only when the caller's device can render it; the
// caller decides that as a constructor parameter, not a hardcoded flag.
func Default(supportsEmoji bool) Capabilities {
	sas := []string{"decimal"}
	if supportsEmoji {
		sas = []string{"emoji", "decimal"}
	}
	return Capabilities{
		KeyAgreementProtocols:      []string{"curve25519"},
		Hashes:                     []string{"sha256"},
		MessageAuthenticationCodes: []string{"hkdf-hmac-sha256", "hmac-sha256"},
		ShortAuthenticationStrings: sas,
	}
}

// Agreed is the negotiated tuple bound into a Transaction at Accept and
// never mutated afterward.
type Agreed struct {
	KeyAgreementProtocol      string
	Hash                      string
	MessageAuthenticationCode string
	ShortAuthenticationStrings []string
}

// Negotiate computes the agreed tuple: for each field, the first entry of
// local's preference order that also appears in peer's offer. If any
// field's intersection is empty, it returns ErrNoAgreement.
//
// short_authentication_strings is special-cased: the agreed set is every
// string peer offered that local also supports (not just the first),
// since a transaction may end up using either representation depending on
// what the user picks to look at.
func Negotiate(local, peer Capabilities) (Agreed, error) {
	kap, ok := firstCommon(local.KeyAgreementProtocols, peer.KeyAgreementProtocols)
	if !ok {
		return Agreed{}, ErrNoAgreement
	}

	hash, ok := firstCommon(local.Hashes, peer.Hashes)
	if !ok {
		return Agreed{}, ErrNoAgreement
	}

	mac, ok := firstCommon(local.MessageAuthenticationCodes, peer.MessageAuthenticationCodes)
	if !ok {
		return Agreed{}, ErrNoAgreement
	}

	sas := commonAll(local.ShortAuthenticationStrings, peer.ShortAuthenticationStrings)
	if len(sas) == 0 {
		return Agreed{}, ErrNoAgreement
	}

	return Agreed{
		KeyAgreementProtocol:       kap,
		Hash:                       hash,
		MessageAuthenticationCode: mac,
		ShortAuthenticationStrings: sas,
	}, nil
}

// firstCommon returns the first entry of local that also appears in peer.
func firstCommon(local, peer []string) (string, bool) {
	peerSet := toSet(peer)
	for _, v := range local {
		if peerSet[v] {
			return v, true
		}
	}
	return "", false
}

// commonAll returns every entry of peer that also appears in local,
// preserving peer's order.
func commonAll(local, peer []string) []string {
	localSet := toSet(local)
	var out []string
	for _, v := range peer {
		if localSet[v] {
			out = append(out, v)
		}
	}
	return out
}

func toSet(vs []string) map[string]bool {
	m := make(map[string]bool, len(vs))
	for _, v := range vs {
		m[v] = true
	}
	return m
}
