package dnssec

import (
	"encoding/base64"

	"gopkg.in/yaml.v3"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// anchorFile is the on-disk shape accepted by ParseAnchorsYAML: a list of
// base64-encoded root KSK public keys, supplementing the compile-time
// pinned table for operators who need to roll a root key before a new
// release ships.
type anchorFile struct {
	RootKeySigningKeys []string `yaml:"rootKeySigningKeys"`
}

// ParseAnchorsYAML decodes base64-encoded DNSKEY public-key bytes from a
// YAML document of the anchorFile shape.
func ParseAnchorsYAML(data []byte) ([][]byte, error) {
	var f anchorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, dnserr.Wrap(dnserr.KindInvalidData, "trust anchor YAML", err)
	}
	out := make([][]byte, 0, len(f.RootKeySigningKeys))
	for _, encoded := range f.RootKeySigningKeys {
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, dnserr.Wrap(dnserr.KindInvalidData, "trust anchor base64", err)
		}
		out = append(out, key)
	}
	return out, nil
}
