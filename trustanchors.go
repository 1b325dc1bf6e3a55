package dnskit

import (
	"encoding/base64"

	"github.com/dnsscience/dnskit/internal/dnssec"
)

// RootTrustAnchors is the compile-time pinned table of root-zone
// key-signing-key public-key bytes. Extending this table, or calling
// AddTrustAnchorsFromYAML to supplement it at startup, is the only
// mechanism for rotating the trust root.
//
// The entries below are the raw DNSKEY public-key bytes (RFC 3110
// wire format) of IANA's currently published root KSKs, base64-decoded at
// package initialization.
var RootTrustAnchors = mustDecodeAnchors(
	// KSK-2017, algorithm 8 (RSA/SHA-256), key tag 20326.
	"AwEAAaz/tAm8yTn4Mfeh5eyI96WSVexTBAvkMgJzkKTOiW1vkIbzxeF3+/4RgWOq7HrxRixHlFlExOLAJr5emLvN7SWXgnLh4+B5xQlNVz8Og8kvArMtNROxVQuCaSnIDdD5LKyWbRd2n9WGe2R8PzgCmr3EgVLrjyBxWezF0jLHwVN8efS3rCj/EWgvIWgb9tarpVUDK/b58Da+sqqls3eNbuv7pr+eoZG+SrDK6nWeL3c6H5Apxz7LjVc1uTIdsIXxuOLYA4/ilBmSVIzuDWfdRUfhHdY6+cn8HFRm+2hM8AnXGXws9555KrUB5qihylGa8subX2Nn6UwNR1AkUTV74bU=",
)

func mustDecodeAnchors(encoded ...string) [][]byte {
	out := make([][]byte, 0, len(encoded))
	for _, e := range encoded {
		b, err := base64.StdEncoding.DecodeString(e)
		if err != nil {
			panic("dnskit: malformed built-in trust anchor: " + err.Error())
		}
		out = append(out, b)
	}
	return out
}

// AddTrustAnchorsFromYAML decodes a YAML trust-anchor document (see
// dnssec.ParseAnchorsYAML) and appends its keys to RootTrustAnchors. It is
// not safe to call concurrently with an in-flight Query.Authenticate.
func AddTrustAnchorsFromYAML(data []byte) error {
	keys, err := dnssec.ParseAnchorsYAML(data)
	if err != nil {
		return err
	}
	RootTrustAnchors = append(RootTrustAnchors, keys...)
	return nil
}
