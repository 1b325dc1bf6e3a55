package wire

import "github.com/dnsscience/dnskit/internal/dnserr"

// TXTRecord is a TXT record: a sequence of length-prefixed character
// strings, concatenated into one decoded string.
type TXTRecord struct {
	Text string
	raw  []byte
}

func (r *TXTRecord) Type() Type           { return TypeTXT }
func (r *TXTRecord) Uncompressed() []byte { return r.raw }

func decodeTXT(raw []byte) (*TXTRecord, error) {
	var text []byte
	pos := 0
	for pos < len(raw) {
		n := int(raw[pos])
		pos++
		if pos+n > len(raw) {
			return nil, dnserr.New(dnserr.KindInvalidData, "TXT substring overruns rdata")
		}
		text = append(text, raw[pos:pos+n]...)
		pos += n
	}
	cp := append([]byte{}, raw...)
	return &TXTRecord{Text: string(text), raw: cp}, nil
}
