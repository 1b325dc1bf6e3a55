package wire

import "github.com/dnsscience/dnskit/internal/dnserr"

// RData is implemented by every typed record-data variant plus ErrorRecord.
// Uncompressed returns the canonical on-wire image used as input to RRSIG
// signature computation: any embedded names are decompressed and
// re-encoded.
type RData interface {
	Type() Type
	Uncompressed() []byte
}

// ErrorRecord replaces the record data of an Answer whose type is known but
// whose rdata failed to decode, so one malformed record does not invalidate
// the whole message. In the authority and additional sections it also
// stands in for records of an unrecognized type (see decodeAnswer).
type ErrorRecord struct {
	RRType Type
	Err    error
	Raw    []byte
}

func (e *ErrorRecord) Type() Type           { return e.RRType }
func (e *ErrorRecord) Uncompressed() []byte { return e.Raw }

// decodeRData dispatches to the per-type decoder. msg/rdataOffset/rdlength
// locate the rdata within the full message (needed because name-bearing
// rdata types may contain compression pointers referencing earlier message
// offsets). It always errors on an unknown type or a decode failure inside a
// known one; decodeAnswer decides, per section, whether that error aborts
// the message or is demoted to an ErrorRecord.
func decodeRData(rrType Type, msg []byte, rdataOffset, rdlength int) (RData, error) {
	if rdataOffset+rdlength > len(msg) {
		return nil, dnserr.New(dnserr.KindInvalidData, "rdlength exceeds message")
	}
	raw := msg[rdataOffset : rdataOffset+rdlength]

	switch rrType {
	case TypeA:
		return decodeA(raw)
	case TypeAAAA:
		return decodeAAAA(raw)
	case TypeNS:
		return decodeNameRData(rrType, msg, rdataOffset, rdlength)
	case TypeCNAME:
		return decodeNameRData(rrType, msg, rdataOffset, rdlength)
	case TypePTR:
		return decodeNameRData(rrType, msg, rdataOffset, rdlength)
	case TypeSOA:
		return decodeSOA(msg, rdataOffset, rdlength)
	case TypeMX:
		return decodeMX(msg, rdataOffset, rdlength)
	case TypeSRV:
		return decodeSRV(msg, rdataOffset, rdlength)
	case TypeTXT:
		return decodeTXT(raw)
	case TypeLOC:
		return decodeLOC(raw)
	case TypeSVCB, TypeHTTPS:
		return decodeSVCB(rrType, raw)
	case TypeDS:
		return decodeDS(raw)
	case TypeRRSIG:
		return decodeRRSIG(msg, rdataOffset, rdlength)
	case TypeDNSKEY:
		return decodeDNSKEY(raw)
	case TypeNSEC:
		return decodeNSEC(msg, rdataOffset, rdlength)
	case TypeNSEC3:
		return decodeNSEC3(raw)
	default:
		return nil, dnserr.New(dnserr.KindIncorrectType, rrType.String())
	}
}
