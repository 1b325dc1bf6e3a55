package wire

import (
	"net"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// ARecord is an A record (RFC 1035 §3.4.1).
type ARecord struct {
	Address net.IP
}

func (r *ARecord) Type() Type           { return TypeA }
func (r *ARecord) Uncompressed() []byte { return []byte(r.Address.To4()) }

func decodeA(raw []byte) (*ARecord, error) {
	if len(raw) != 4 {
		return nil, dnserr.New(dnserr.KindInvalidData, "A record must be 4 bytes")
	}
	ip := make(net.IP, 4)
	copy(ip, raw)
	return &ARecord{Address: ip}, nil
}

// AAAARecord is an AAAA record (RFC 3596).
type AAAARecord struct {
	Address net.IP
}

func (r *AAAARecord) Type() Type           { return TypeAAAA }
func (r *AAAARecord) Uncompressed() []byte { return []byte(r.Address.To16()) }

func decodeAAAA(raw []byte) (*AAAARecord, error) {
	if len(raw) != 16 {
		return nil, dnserr.New(dnserr.KindInvalidData, "AAAA record must be 16 bytes")
	}
	ip := make(net.IP, 16)
	copy(ip, raw)
	return &AAAARecord{Address: ip}, nil
}
