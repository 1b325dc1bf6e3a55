package wire

import (
	"encoding/binary"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// DSRecord is a Delegation Signer record (RFC 4034 §5).
type DSRecord struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
	raw        []byte
}

func (r *DSRecord) Type() Type           { return TypeDS }
func (r *DSRecord) Uncompressed() []byte { return r.raw }

func decodeDS(raw []byte) (*DSRecord, error) {
	if len(raw) < 4 {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated DS")
	}
	r := &DSRecord{
		KeyTag:     binary.BigEndian.Uint16(raw[0:2]),
		Algorithm:  raw[2],
		DigestType: raw[3],
		Digest:     append([]byte{}, raw[4:]...),
		raw:        append([]byte{}, raw...),
	}
	return r, nil
}

// RRSIGRecord carries a signature over another rrset (RFC 4034 §3).
type RRSIGRecord struct {
	TypeCovered Type
	Algorithm   uint8
	Labels      uint8
	OriginalTTL uint32
	Expiration  uint32 // unix seconds
	Inception   uint32 // unix seconds
	KeyTag      uint16
	SignerName  string
	Signature   []byte
	raw         []byte
}

func (r *RRSIGRecord) Type() Type           { return TypeRRSIG }
func (r *RRSIGRecord) Uncompressed() []byte { return r.raw }

func decodeRRSIG(msg []byte, rdataOffset, rdlength int) (*RRSIGRecord, error) {
	if rdataOffset+18 > len(msg) {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated RRSIG")
	}
	r := &RRSIGRecord{
		TypeCovered: Type(binary.BigEndian.Uint16(msg[rdataOffset : rdataOffset+2])),
		Algorithm:   msg[rdataOffset+2],
		Labels:      msg[rdataOffset+3],
		OriginalTTL: binary.BigEndian.Uint32(msg[rdataOffset+4 : rdataOffset+8]),
		Expiration:  binary.BigEndian.Uint32(msg[rdataOffset+8 : rdataOffset+12]),
		Inception:   binary.BigEndian.Uint32(msg[rdataOffset+12 : rdataOffset+16]),
		KeyTag:      binary.BigEndian.Uint16(msg[rdataOffset+16 : rdataOffset+18]),
	}
	signer, pos, err := DecodeName(msg, rdataOffset+18)
	if err != nil {
		return nil, err
	}
	end := rdataOffset + rdlength
	if pos > end {
		return nil, dnserr.New(dnserr.KindInvalidData, "RRSIG signer name overruns rdata")
	}
	r.SignerName = signer
	r.Signature = append([]byte{}, msg[pos:end]...)

	encSigner, err := EncodeName(signer)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, 0, 18+len(encSigner)+len(r.Signature))
	raw = binary.BigEndian.AppendUint16(raw, uint16(r.TypeCovered))
	raw = append(raw, r.Algorithm, r.Labels)
	raw = binary.BigEndian.AppendUint32(raw, r.OriginalTTL)
	raw = binary.BigEndian.AppendUint32(raw, r.Expiration)
	raw = binary.BigEndian.AppendUint32(raw, r.Inception)
	raw = binary.BigEndian.AppendUint16(raw, r.KeyTag)
	raw = append(raw, encSigner...)
	raw = append(raw, r.Signature...)
	r.raw = raw
	return r, nil
}

// SignedDataPrefix returns the RRSIG's fixed fields re-serialized with the
// signer name in wire-encoded lowercase canonical form and the signature
// bytes omitted: this is the fixed portion of the canonical signed data,
// before the covered rrset is appended.
func (r *RRSIGRecord) SignedDataPrefix() ([]byte, error) {
	lower, err := EncodeName(lowercaseName(r.SignerName))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 18+len(lower))
	out = binary.BigEndian.AppendUint16(out, uint16(r.TypeCovered))
	out = append(out, r.Algorithm, r.Labels)
	out = binary.BigEndian.AppendUint32(out, r.OriginalTTL)
	out = binary.BigEndian.AppendUint32(out, r.Expiration)
	out = binary.BigEndian.AppendUint32(out, r.Inception)
	out = binary.BigEndian.AppendUint16(out, r.KeyTag)
	out = append(out, lower...)
	return out, nil
}

// DNSKEYRecord is a public key record (RFC 4034 §2).
type DNSKEYRecord struct {
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey []byte
	raw       []byte
}

func (r *DNSKEYRecord) Type() Type           { return TypeDNSKEY }
func (r *DNSKEYRecord) Uncompressed() []byte { return r.raw }

// ZoneKey reports whether the Zone Key flag (bit 0x0100) is set.
func (r *DNSKEYRecord) ZoneKey() bool { return r.Flags&0x0100 != 0 }

// Revoked reports whether the Revoke flag (bit 0x0010, not the 0x0080 some
// implementations use) is set.
func (r *DNSKEYRecord) Revoked() bool { return r.Flags&0x0010 != 0 }

// KeySigningKey reports whether the SEP/KSK flag (bit 0x0001) is set.
func (r *DNSKEYRecord) KeySigningKey() bool { return r.Flags&0x0001 != 0 }

func decodeDNSKEY(raw []byte) (*DNSKEYRecord, error) {
	if len(raw) < 4 {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated DNSKEY")
	}
	r := &DNSKEYRecord{
		Flags:     binary.BigEndian.Uint16(raw[0:2]),
		Protocol:  raw[2],
		Algorithm: raw[3],
		PublicKey: append([]byte{}, raw[4:]...),
		raw:       append([]byte{}, raw...),
	}
	return r, nil
}

// NSECRecord is parsed for structural completeness only; it is never
// consulted for denial-of-existence by the authenticator.
type NSECRecord struct {
	NextName string
	Types    map[uint16]struct{}
	raw      []byte
}

func (r *NSECRecord) Type() Type           { return TypeNSEC }
func (r *NSECRecord) Uncompressed() []byte { return r.raw }

func decodeNSEC(msg []byte, rdataOffset, rdlength int) (*NSECRecord, error) {
	next, pos, err := DecodeName(msg, rdataOffset)
	if err != nil {
		return nil, err
	}
	end := rdataOffset + rdlength
	if pos > end {
		return nil, dnserr.New(dnserr.KindInvalidData, "NSEC next-name overruns rdata")
	}
	types, err := decodeTypeBitmap(msg[pos:end])
	if err != nil {
		return nil, err
	}
	encNext, err := EncodeName(next)
	if err != nil {
		return nil, err
	}
	raw := append(append([]byte{}, encNext...), msg[pos:end]...)
	return &NSECRecord{NextName: next, Types: types, raw: raw}, nil
}

// NSEC3Record is parsed for structural completeness only.
type NSEC3Record struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          []byte
	NextHashed    []byte
	Types         map[uint16]struct{}
	raw           []byte
}

func (r *NSEC3Record) Type() Type           { return TypeNSEC3 }
func (r *NSEC3Record) Uncompressed() []byte { return r.raw }

func decodeNSEC3(raw []byte) (*NSEC3Record, error) {
	if len(raw) < 5 {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated NSEC3")
	}
	pos := 0
	hashAlg := raw[pos]
	pos++
	flags := raw[pos]
	pos++
	iterations := binary.BigEndian.Uint16(raw[pos : pos+2])
	pos += 2
	saltLen := int(raw[pos])
	pos++
	if pos+saltLen > len(raw) {
		return nil, dnserr.New(dnserr.KindInvalidData, "NSEC3 salt overruns rdata")
	}
	salt := append([]byte{}, raw[pos:pos+saltLen]...)
	pos += saltLen
	if pos >= len(raw) {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated NSEC3 hash length")
	}
	hashLen := int(raw[pos])
	pos++
	if pos+hashLen > len(raw) {
		return nil, dnserr.New(dnserr.KindInvalidData, "NSEC3 hash overruns rdata")
	}
	nextHash := append([]byte{}, raw[pos:pos+hashLen]...)
	pos += hashLen
	types, err := decodeTypeBitmap(raw[pos:])
	if err != nil {
		return nil, err
	}
	return &NSEC3Record{
		HashAlgorithm: hashAlg,
		Flags:         flags,
		Iterations:    iterations,
		Salt:          salt,
		NextHashed:    nextHash,
		Types:         types,
		raw:           append([]byte{}, raw...),
	}, nil
}

// decodeTypeBitmap parses the NSEC/NSEC3 type bitmap windows (RFC 4034
// §4.1.2) into a set of covered type codes.
func decodeTypeBitmap(data []byte) (map[uint16]struct{}, error) {
	types := make(map[uint16]struct{})
	pos := 0
	for pos < len(data) {
		if pos+2 > len(data) {
			return nil, dnserr.New(dnserr.KindInvalidData, "truncated type bitmap window")
		}
		window := int(data[pos])
		length := int(data[pos+1])
		pos += 2
		if pos+length > len(data) {
			return nil, dnserr.New(dnserr.KindInvalidData, "type bitmap window overruns rdata")
		}
		for i := 0; i < length; i++ {
			b := data[pos+i]
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>bit) != 0 {
					types[uint16(window*256+i*8+bit)] = struct{}{}
				}
			}
		}
		pos += length
	}
	return types, nil
}
