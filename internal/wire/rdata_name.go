package wire

import (
	"encoding/binary"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// NameRData covers NS, CNAME, and PTR: a single name, decompressed on read
// and re-encoded into the canonical uncompressed image.
type NameRData struct {
	RRType Type
	Name   string
	raw    []byte
}

func (r *NameRData) Type() Type           { return r.RRType }
func (r *NameRData) Uncompressed() []byte { return r.raw }

func decodeNameRData(rrType Type, msg []byte, rdataOffset, rdlength int) (*NameRData, error) {
	name, end, err := DecodeName(msg, rdataOffset)
	if err != nil {
		return nil, err
	}
	if end > rdataOffset+rdlength {
		return nil, dnserr.New(dnserr.KindInvalidData, "name overruns rdata")
	}
	enc, err := EncodeName(name)
	if err != nil {
		return nil, err
	}
	return &NameRData{RRType: rrType, Name: name, raw: enc}, nil
}

// SOARecord is an SOA record (RFC 1035 §3.3.13).
type SOARecord struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
	raw     []byte
}

func (r *SOARecord) Type() Type           { return TypeSOA }
func (r *SOARecord) Uncompressed() []byte { return r.raw }

func decodeSOA(msg []byte, rdataOffset, rdlength int) (*SOARecord, error) {
	mname, pos, err := DecodeName(msg, rdataOffset)
	if err != nil {
		return nil, err
	}
	rname, pos2, err := DecodeName(msg, pos)
	if err != nil {
		return nil, err
	}
	pos = pos2
	if pos+20 > len(msg) {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated SOA")
	}
	r := &SOARecord{
		MName:   mname,
		RName:   rname,
		Serial:  binary.BigEndian.Uint32(msg[pos : pos+4]),
		Refresh: binary.BigEndian.Uint32(msg[pos+4 : pos+8]),
		Retry:   binary.BigEndian.Uint32(msg[pos+8 : pos+12]),
		Expire:  binary.BigEndian.Uint32(msg[pos+12 : pos+16]),
		Minimum: binary.BigEndian.Uint32(msg[pos+16 : pos+20]),
	}
	encM, err := EncodeName(mname)
	if err != nil {
		return nil, err
	}
	encR, err := EncodeName(rname)
	if err != nil {
		return nil, err
	}
	out := append(append([]byte{}, encM...), encR...)
	tail := make([]byte, 20)
	binary.BigEndian.PutUint32(tail[0:4], r.Serial)
	binary.BigEndian.PutUint32(tail[4:8], r.Refresh)
	binary.BigEndian.PutUint32(tail[8:12], r.Retry)
	binary.BigEndian.PutUint32(tail[12:16], r.Expire)
	binary.BigEndian.PutUint32(tail[16:20], r.Minimum)
	r.raw = append(out, tail...)
	return r, nil
}

// MXRecord is an MX record (RFC 1035 §3.3.9).
type MXRecord struct {
	Preference uint16
	Exchange   string
	raw        []byte
}

func (r *MXRecord) Type() Type           { return TypeMX }
func (r *MXRecord) Uncompressed() []byte { return r.raw }

func decodeMX(msg []byte, rdataOffset, rdlength int) (*MXRecord, error) {
	if rdataOffset+2 > len(msg) {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated MX")
	}
	pref := binary.BigEndian.Uint16(msg[rdataOffset : rdataOffset+2])
	exch, _, err := DecodeName(msg, rdataOffset+2)
	if err != nil {
		return nil, err
	}
	enc, err := EncodeName(exch)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, 0, 2+len(enc))
	raw = binary.BigEndian.AppendUint16(raw, pref)
	raw = append(raw, enc...)
	return &MXRecord{Preference: pref, Exchange: exch, raw: raw}, nil
}

// SRVRecord is an SRV record (RFC 2782).
type SRVRecord struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
	raw      []byte
}

func (r *SRVRecord) Type() Type           { return TypeSRV }
func (r *SRVRecord) Uncompressed() []byte { return r.raw }

func decodeSRV(msg []byte, rdataOffset, rdlength int) (*SRVRecord, error) {
	if rdataOffset+6 > len(msg) {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated SRV")
	}
	prio := binary.BigEndian.Uint16(msg[rdataOffset : rdataOffset+2])
	weight := binary.BigEndian.Uint16(msg[rdataOffset+2 : rdataOffset+4])
	port := binary.BigEndian.Uint16(msg[rdataOffset+4 : rdataOffset+6])
	target, _, err := DecodeName(msg, rdataOffset+6)
	if err != nil {
		return nil, err
	}
	enc, err := EncodeName(target)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, 0, 6+len(enc))
	raw = binary.BigEndian.AppendUint16(raw, prio)
	raw = binary.BigEndian.AppendUint16(raw, weight)
	raw = binary.BigEndian.AppendUint16(raw, port)
	raw = append(raw, enc...)
	return &SRVRecord{Priority: prio, Weight: weight, Port: port, Target: target, raw: raw}, nil
}
