package dnssec

import (
	"bytes"
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"strings"

	"github.com/dnsscience/dnskit/internal/concurrency"
	"github.com/dnsscience/dnskit/internal/dnserr"
	"github.com/dnsscience/dnskit/internal/transport"
	"github.com/dnsscience/dnskit/internal/wire"
)

// Authenticate proves signature validity and chain of trust for reply m
// answering a question about questionName. exchanger is the transport
// client the dispatcher used for the original query, reused for side
// queries so they do not re-race server selection.
func Authenticate(ctx context.Context, exchanger transport.Client, limiter *concurrency.Limiter, trustAnchors [][]byte, m *wire.Message, questionName string) (*Result, error) {
	resources, err := collect(ctx, exchanger, limiter, m)
	if err != nil {
		return nil, err
	}

	result := &Result{Resources: resources}
	result.SignatureVerified, result.SignatureError = verifyAnswerSignature(m, resources)

	if strings.TrimSuffix(questionName, ".") == "" {
		// The root question needs no chain walk: it is its own trust anchor.
		result.ChainTrusted = result.SignatureVerified
		return result, nil
	}

	result.ChainTrusted, result.ChainError = walkChain(ancestors(questionName), resources, trustAnchors)
	return result, nil
}

// verifyAnswerSignature checks every RRSIG in m's answers against the
// DNSKEY set collected for its signing zone; any one valid signature over
// its covered rrset is sufficient.
func verifyAnswerSignature(m *wire.Message, resources []Resource) (bool, error) {
	var rrset []wire.Answer
	var sigs []*wire.RRSIGRecord
	for _, a := range m.Answers {
		if sig, ok := a.RData.(*wire.RRSIGRecord); ok {
			sigs = append(sigs, sig)
			continue
		}
		rrset = append(rrset, a)
	}
	if len(sigs) == 0 {
		return false, dnserr.New(dnserr.KindNoSignatures, "reply carries no RRSIG")
	}

	var firstErr error
	for _, sig := range sigs {
		covered := filterByType(rrset, sig.TypeCovered)
		res := findResource(resources, sig.SignerName)
		if res == nil {
			if firstErr == nil {
				firstErr = dnserr.New(dnserr.KindMissingKeys, "no collected resources for "+sig.SignerName)
			}
			continue
		}
		for _, keyAnswer := range res.DNSKEYAnswers {
			key, ok := keyAnswer.RData.(*wire.DNSKEYRecord)
			if !ok {
				continue
			}
			if err := validateAnswers(covered, sig, keyAnswer.Name, key); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			data, err := signedData(sig, covered)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if err := verifySignature(sig.Algorithm, key.PublicKey, data, sig.Signature); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			return true, nil
		}
	}
	return false, firstErr
}

func filterByType(answers []wire.Answer, t wire.Type) []wire.Answer {
	var out []wire.Answer
	for _, a := range answers {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func findResource(resources []Resource, zone string) *Resource {
	for i := range resources {
		if wire.EqualNames(resources[i].Zone, zone) {
			return &resources[i]
		}
	}
	return nil
}

// validateAnswers runs the per-record consistency checks RFC 4035 §5.3.1
// requires before any cryptography is attempted.
func validateAnswers(rrset []wire.Answer, sig *wire.RRSIGRecord, keyOwner string, key *wire.DNSKEYRecord) error {
	if len(rrset) == 0 {
		return dnserr.New(dnserr.KindInvalidResponse, "empty rrset")
	}
	name, typ, class := rrset[0].Name, rrset[0].Type, rrset[0].Class
	for _, a := range rrset {
		if !wire.EqualNames(a.Name, name) || a.Type != typ || a.Class != class {
			return dnserr.New(dnserr.KindBadSigningKey, "rrset members disagree on name/type/class")
		}
	}

	keyTag := wire.KeyTag(key.Uncompressed())
	if sig.KeyTag != keyTag {
		return dnserr.New(dnserr.KindBadSigningKey, "RRSIG key tag does not match DNSKEY")
	}
	if !wire.EqualNames(sig.SignerName, keyOwner) {
		return dnserr.New(dnserr.KindBadSigningKey, "RRSIG signer name does not match DNSKEY owner")
	}
	if key.Protocol != 3 {
		return dnserr.New(dnserr.KindBadSigningKey, "DNSKEY protocol must be 3")
	}
	if !key.ZoneKey() {
		return dnserr.New(dnserr.KindBadSigningKey, "DNSKEY zone key flag not set")
	}
	if key.Revoked() {
		return dnserr.New(dnserr.KindBadSigningKey, "DNSKEY is revoked")
	}
	if sig.TypeCovered != typ {
		return dnserr.New(dnserr.KindBadSigningKey, "RRSIG type-covered does not match rrset type")
	}
	return nil
}

// walkChain verifies, for each zone from the question's name up to (but
// excluding) the root, that a DS record in the zone's own DS message
// matches a DNSKEY in that zone's own DNSKEY message, then anchors the
// root DNSKEY set in trustAnchors.
//
// hasValidDs starts false for every zone and is only set true by a
// matching DS/DNSKEY pair, so an all-zones-unmatched walk correctly
// surfaces missingKeys instead of silently passing.
func walkChain(zones []string, resources []Resource, trustAnchors [][]byte) (bool, error) {
	for _, zone := range zones {
		if strings.TrimSuffix(zone, ".") == "" {
			continue // root has no DS to check against a parent
		}
		res := findResource(resources, zone)
		if res == nil || len(res.DSAnswers) == 0 || len(res.DNSKEYAnswers) == 0 {
			return false, dnserr.New(dnserr.KindMissingKeys, "no DS/DNSKEY resources for "+zone)
		}

		hasValidDs := false
		for _, dsAnswer := range res.DSAnswers {
			ds, ok := dsAnswer.RData.(*wire.DSRecord)
			if !ok {
				continue
			}
			for _, keyAnswer := range res.DNSKEYAnswers {
				key, ok := keyAnswer.RData.(*wire.DNSKEYRecord)
				if !ok {
					continue
				}
				if wire.KeyTag(key.Uncompressed()) != ds.KeyTag {
					continue
				}
				digest, err := dsDigest(ds.DigestType, keyAnswer.Name, key.Uncompressed())
				if err != nil {
					continue
				}
				if bytes.Equal(digest, ds.Digest) {
					hasValidDs = true
				}
			}
		}
		if !hasValidDs {
			return false, dnserr.New(dnserr.KindMissingKeys, "no DS record matches a DNSKEY in "+zone)
		}

		if err := verifyResourceSignature(res.DNSKEYAnswers, res.DNSKEYSig, res.DNSKEYAnswers, zone); err != nil {
			return false, err
		}
		if len(res.DSAnswers) > 0 {
			// A zone's DS RRset lives in and is signed by its parent, not the
			// zone itself: verify it against the parent's collected DNSKEYs.
			parent := findResource(resources, parentOf(zone))
			if parent == nil {
				return false, dnserr.New(dnserr.KindMissingKeys, "no parent DNSKEY resource for "+zone)
			}
			if err := verifyResourceSignature(res.DSAnswers, res.DSSig, parent.DNSKEYAnswers, zone); err != nil {
				return false, err
			}
		}
	}

	root := findResource(resources, ".")
	if root == nil {
		return false, dnserr.New(dnserr.KindMissingKeys, "no root DNSKEY resource collected")
	}
	anchored := false
	for _, keyAnswer := range root.DNSKEYAnswers {
		key, ok := keyAnswer.RData.(*wire.DNSKEYRecord)
		if !ok || !key.KeySigningKey() {
			continue
		}
		for _, anchor := range trustAnchors {
			if bytes.Equal(key.PublicKey, anchor) {
				anchored = true
			}
		}
	}
	if !anchored {
		return false, dnserr.New(dnserr.KindUntrustedRootSigningKey, "no root KSK matches the trust-anchor table")
	}
	return true, nil
}

// verifyResourceSignature verifies sig over rrset using keyAnswers, the
// DNSKEY set of whichever zone actually signs rrset: the zone itself for a
// DNSKEY RRset, but its parent for a DS RRset (RFC 4034 §5: a DS record
// lives in, and is signed by, the parent zone). zone is the owner name of
// rrset, used only for error messages.
func verifyResourceSignature(rrset []wire.Answer, sig *wire.RRSIGRecord, keyAnswers []wire.Answer, zone string) error {
	if sig == nil {
		return dnserr.New(dnserr.KindNoSignatures, "no covering RRSIG for "+zone)
	}
	var lastErr error
	for _, keyAnswer := range keyAnswers {
		key, ok := keyAnswer.RData.(*wire.DNSKEYRecord)
		if !ok {
			continue
		}
		if err := validateAnswers(rrset, sig, keyAnswer.Name, key); err != nil {
			lastErr = err
			continue
		}
		data, err := signedData(sig, rrset)
		if err != nil {
			lastErr = err
			continue
		}
		if err := verifySignature(sig.Algorithm, key.PublicKey, data, sig.Signature); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = dnserr.New(dnserr.KindBadSigningKey, "no DNSKEY validated "+zone)
	}
	return lastErr
}

// parentOf returns the immediate parent zone of zone, or "." if zone is
// already a single label below the root.
func parentOf(zone string) string {
	trimmed := strings.TrimSuffix(zone, ".")
	labels := strings.Split(trimmed, ".")
	if len(labels) <= 1 {
		return "."
	}
	return strings.Join(labels[1:], ".") + "."
}

// dsDigest computes the DS digest over (wire-encoded owner-name ||
// DNSKEY rdata), per RFC 4509 §2.
func dsDigest(digestType uint8, owner string, dnskeyRData []byte) ([]byte, error) {
	encOwner, err := wire.EncodeName(strings.ToLower(owner))
	if err != nil {
		return nil, err
	}
	input := append(append([]byte{}, encOwner...), dnskeyRData...)

	switch digestType {
	case DigestSHA1:
		sum := sha1.Sum(input)
		return sum[:], nil
	case DigestSHA256:
		sum := sha256.Sum256(input)
		return sum[:], nil
	case DigestSHA384:
		sum := sha512.Sum384(input)
		return sum[:], nil
	default:
		return nil, dnserr.New(dnserr.KindUnsupportedAlgorithm, "unsupported DS digest type")
	}
}
