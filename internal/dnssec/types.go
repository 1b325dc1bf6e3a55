// Package dnssec implements the chain-of-trust authenticator: it collects
// DNSKEY/DS resources for every zone on a reply's signing path, verifies
// RRSIG signatures over canonical resource-record sets, and walks
// delegation-signer records up to a pinned set of root trust anchors.
package dnssec

import "github.com/dnsscience/dnskit/internal/wire"

// Resource is the DNSKEY/DS material collected for one zone on the
// signing path. The root zone has no DS.
type Resource struct {
	Zone          string
	DNSKEYAnswers []wire.Answer
	DNSKEYSig     *wire.RRSIGRecord
	DSAnswers     []wire.Answer
	DSSig         *wire.RRSIGRecord
}

// Result is the immutable outcome of one Authenticate call. Signature and
// chain checks are independent: both are attempted and either may fail
// while the other succeeds.
type Result struct {
	SignatureVerified bool
	SignatureError    error
	ChainTrusted      bool
	ChainError        error
	Resources         []Resource
}
