package dnssec

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/dnsscience/dnskit/internal/dnserr"
	"github.com/dnsscience/dnskit/internal/wire"
)

// signedData builds the canonical message verified against an RRSIG's
// signature (RFC 4034 §3.1.8.1): signature-minus-signature-field fields
// followed by the covered rrset, canonically ordered and owner-name
// lowercased.
func signedData(sig *wire.RRSIGRecord, rrset []wire.Answer) ([]byte, error) {
	if len(rrset) == 0 {
		return nil, dnserr.New(dnserr.KindInvalidResponse, "empty rrset")
	}

	sorted := make([]wire.Answer, len(rrset))
	copy(sorted, rrset)
	sort.Slice(sorted, func(i, j int) bool {
		return wire.CompareUncompressed(sorted[i], sorted[j]) < 0
	})

	prefix, err := sig.SignedDataPrefix()
	if err != nil {
		return nil, err
	}
	out := append([]byte{}, prefix...)

	for _, rr := range sorted {
		owner, err := canonicalOwnerName(rr.Name, sig.Labels)
		if err != nil {
			return nil, err
		}
		encOwner, err := wire.EncodeName(owner)
		if err != nil {
			return nil, err
		}
		out = append(out, encOwner...)
		out = binary.BigEndian.AppendUint16(out, uint16(rr.Type))
		out = binary.BigEndian.AppendUint16(out, uint16(rr.Class))
		out = binary.BigEndian.AppendUint32(out, sig.OriginalTTL)
		rdata := rr.RData.Uncompressed()
		out = binary.BigEndian.AppendUint16(out, uint16(len(rdata)))
		out = append(out, rdata...)
	}
	return out, nil
}

// canonicalOwnerName lowercases owner and, when the RRSIG's label count is
// less than the record's own label count, replaces the leading labels with
// a single wildcard label (RFC 4035 §5.3.2).
func canonicalOwnerName(owner string, rrsigLabels uint8) (string, error) {
	lower := strings.ToLower(owner)
	trimmed := strings.TrimSuffix(lower, ".")
	var labels []string
	if trimmed != "" {
		labels = strings.Split(trimmed, ".")
	}
	if len(labels) > int(rrsigLabels) {
		wildcardSuffix := labels[len(labels)-int(rrsigLabels):]
		labels = append([]string{"*"}, wildcardSuffix...)
	}
	return strings.Join(labels, ".") + ".", nil
}
