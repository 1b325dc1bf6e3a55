// Package wire implements DNS message encoding and decoding per RFC 1035,
// including name compression, EDNS0 OPT synthesis, and a per-type record
// data codec covering the types this library understands.
//
// Name decoding carries the same compression-bomb defenses a production
// parser needs: depth-bounded pointer walking, loop rejection by requiring
// every pointer to target an earlier offset, and label/name length caps,
// extended here into a full
// encoder/decoder pair with typed record-data variants, canonical
// uncompressed rdata images, and the DNSSEC-specific record types a plain
// recursive resolver never needs to parse.
package wire

// Type is a DNS resource record type (RFC 1035 §3.2.2 and extensions).
type Type uint16

const (
	TypeA     Type = 1
	TypeNS    Type = 2
	TypeCNAME Type = 5
	TypeSOA   Type = 6
	TypePTR   Type = 12
	TypeMX    Type = 15
	TypeTXT   Type = 16
	TypeAAAA   Type = 28
	TypeLOC    Type = 29
	TypeSRV    Type = 33
	TypeNAPTR  Type = 35
	TypeOPT    Type = 41
	TypeDS     Type = 43
	TypeRRSIG  Type = 46
	TypeNSEC   Type = 47
	TypeDNSKEY Type = 48
	TypeNSEC3  Type = 50
	TypeSVCB   Type = 64
	TypeHTTPS  Type = 65
)

// Class is a DNS class (RFC 1035 §3.2.4). Only IN is supported by the
// query construction path; other values may still be decoded on the wire.
type Class uint16

const ClassIN Class = 1

// Opcode is the DNS header opcode (RFC 1035 §4.1.1).
type Opcode uint8

const OpcodeQuery Opcode = 0

// Rcode is the DNS header response code.
type Rcode uint8

const (
	RcodeSuccess        Rcode = 0
	RcodeFormatError    Rcode = 1
	RcodeServerFailure  Rcode = 2
	RcodeNameError      Rcode = 3 // NXDOMAIN
	RcodeNotImplemented Rcode = 4
	RcodeRefused        Rcode = 5
)

func (t Type) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeNS:
		return "NS"
	case TypeCNAME:
		return "CNAME"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	case TypeAAAA:
		return "AAAA"
	case TypeLOC:
		return "LOC"
	case TypeSRV:
		return "SRV"
	case TypeNAPTR:
		return "NAPTR"
	case TypeOPT:
		return "OPT"
	case TypeDS:
		return "DS"
	case TypeRRSIG:
		return "RRSIG"
	case TypeNSEC:
		return "NSEC"
	case TypeDNSKEY:
		return "DNSKEY"
	case TypeNSEC3:
		return "NSEC3"
	case TypeSVCB:
		return "SVCB"
	case TypeHTTPS:
		return "HTTPS"
	default:
		return "UNKNOWN"
	}
}
