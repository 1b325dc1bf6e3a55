package wire

import (
	"encoding/binary"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// SvcParamKey identifies an SVCB/HTTPS parameter (RFC 9460 §14.3.2).
type SvcParamKey uint16

const (
	SvcParamALPN          SvcParamKey = 1
	SvcParamNoDefaultALPN SvcParamKey = 2
	SvcParamPort          SvcParamKey = 3
	SvcParamIPv4Hint      SvcParamKey = 4
	SvcParamECH           SvcParamKey = 5
	SvcParamIPv6Hint      SvcParamKey = 6
)

// SvcParam is one (key, value) parameter of an SVCB/HTTPS record.
type SvcParam struct {
	Key   SvcParamKey
	Value []byte
}

// SVCBRecord covers both SVCB (type 64) and HTTPS (type 65); the wire
// format is identical (RFC 9460). Unknown SvcParamKeys are kept in Params
// but otherwise ignored: never an error.
type SVCBRecord struct {
	RRType   Type
	Priority uint16
	Target   string
	Params   []SvcParam
	raw      []byte
}

func (r *SVCBRecord) Type() Type           { return r.RRType }
func (r *SVCBRecord) Uncompressed() []byte { return r.raw }

func decodeSVCB(rrType Type, raw []byte) (*SVCBRecord, error) {
	if len(raw) < 3 {
		return nil, dnserr.New(dnserr.KindInvalidData, "truncated SVCB/HTTPS record")
	}
	priority := binary.BigEndian.Uint16(raw[0:2])

	// Target names in SVCB/HTTPS are never compressed (RFC 9460 §2), so we
	// decode directly out of the rdata slice rather than the full message.
	target, pos, err := DecodeName(raw, 2)
	if err != nil {
		return nil, err
	}

	var params []SvcParam
	for pos < len(raw) {
		if pos+4 > len(raw) {
			return nil, dnserr.New(dnserr.KindInvalidData, "truncated SVCB parameter header")
		}
		key := SvcParamKey(binary.BigEndian.Uint16(raw[pos : pos+2]))
		length := int(binary.BigEndian.Uint16(raw[pos+2 : pos+4]))
		pos += 4
		if pos+length > len(raw) {
			return nil, dnserr.New(dnserr.KindInvalidData, "SVCB parameter value overruns rdata")
		}
		value := raw[pos : pos+length]
		pos += length

		switch key {
		case SvcParamIPv4Hint:
			if length%4 != 0 {
				return nil, dnserr.New(dnserr.KindInvalidData, "IPv4hint length not a multiple of 4")
			}
		case SvcParamIPv6Hint:
			if length%16 != 0 {
				return nil, dnserr.New(dnserr.KindInvalidData, "IPv6hint length not a multiple of 16")
			}
		}
		// Unknown keys are preserved and skipped, never an error.
		params = append(params, SvcParam{Key: key, Value: append([]byte{}, value...)})
	}

	r := &SVCBRecord{RRType: rrType, Priority: priority, Target: target, Params: params}
	r.raw = append([]byte{}, raw...) // target is uncompressed by spec, wire bytes already canonical
	return r, nil
}
