package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// Answer is a decoded resource record from the answer section. RData holds
// the typed semantic fields; Uncompressed (via RData) is the canonical
// on-wire rdata image used by signature computations.
type Answer struct {
	Name  string
	Type  Type
	Class Class
	TTL   uint32
	RData RData
}

// decodeAnswer decodes one resource record. failOnUnknownType governs only
// what happens when rrType itself is unrecognized: the answer section
// requires every record it carries to be of a type this library
// understands, so an unknown type there aborts the whole decode; the
// authority and additional sections are parsed for structural validity only
// (the additional section's OPT pseudo-record is never a recognized RData
// type) and fall back to ErrorRecord instead. A decode failure inside a
// known type always demotes to ErrorRecord regardless of section, so one
// malformed record does not invalidate the whole message.
func decodeAnswer(msg []byte, offset int, failOnUnknownType bool) (Answer, int, error) {
	name, pos, err := DecodeName(msg, offset)
	if err != nil {
		return Answer{}, 0, err
	}
	if pos+10 > len(msg) {
		return Answer{}, 0, dnserr.New(dnserr.KindInvalidData, "truncated answer header")
	}
	rrType := Type(binary.BigEndian.Uint16(msg[pos : pos+2]))
	class := Class(binary.BigEndian.Uint16(msg[pos+2 : pos+4]))
	ttl := binary.BigEndian.Uint32(msg[pos+4 : pos+8])
	rdlength := int(binary.BigEndian.Uint16(msg[pos+8 : pos+10]))
	rdataOffset := pos + 10

	if rdataOffset+rdlength > len(msg) {
		return Answer{}, 0, dnserr.New(dnserr.KindInvalidData, "rdlength exceeds remaining message bytes")
	}

	rdata, decErr := decodeRData(rrType, msg, rdataOffset, rdlength)
	if decErr != nil {
		if failOnUnknownType && dnserr.Is(decErr, dnserr.KindIncorrectType) {
			return Answer{}, 0, decErr
		}
		raw := append([]byte{}, msg[rdataOffset:rdataOffset+rdlength]...)
		rdata = &ErrorRecord{RRType: rrType, Err: decErr, Raw: raw}
	}

	a := Answer{Name: name, Type: rrType, Class: class, TTL: ttl, RData: rdata}
	return a, rdataOffset + rdlength, nil
}

// CompareUncompressed implements the canonical byte-wise comparison of
// uncompressed record data used to order an rrset before hashing.
func CompareUncompressed(a, b Answer) int {
	return bytes.Compare(a.RData.Uncompressed(), b.RData.Uncompressed())
}
