package wire

import (
	"encoding/binary"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// LOCRecord is a LOC record (RFC 1876). Size/precision fields are encoded
// as mantissa (high nibble) * 10^exponent (low nibble) centimeters;
// latitude/longitude are 32-bit offsets from 2^31 (equator / prime
// meridian); altitude is an offset of 10,000,000 centimeters from the
// reference ellipsoid.
type LOCRecord struct {
	Version            uint8
	Size               uint8
	HorizPrecision     uint8
	VertPrecision      uint8
	Latitude           uint32
	Longitude          uint32
	Altitude           uint32
	raw                []byte
}

func (r *LOCRecord) Type() Type           { return TypeLOC }
func (r *LOCRecord) Uncompressed() []byte { return r.raw }

func decodeLOC(raw []byte) (*LOCRecord, error) {
	if len(raw) != 16 {
		return nil, dnserr.New(dnserr.KindInvalidData, "LOC record must be 16 bytes")
	}
	if raw[0] != 0 {
		return nil, dnserr.New(dnserr.KindInvalidData, "unsupported LOC version")
	}
	r := &LOCRecord{
		Version:        raw[0],
		Size:           raw[1],
		HorizPrecision: raw[2],
		VertPrecision:  raw[3],
		Latitude:       binary.BigEndian.Uint32(raw[4:8]),
		Longitude:      binary.BigEndian.Uint32(raw[8:12]),
		Altitude:       binary.BigEndian.Uint32(raw[12:16]),
	}
	r.raw = append([]byte{}, raw...)
	return r, nil
}

// locDecode returns the value mantissa*10^exponent for a LOC size/precision
// byte (high nibble mantissa, low nibble exponent), in centimeters.
func locDecode(b uint8) uint64 {
	mantissa := uint64(b >> 4)
	exponent := uint64(b & 0x0F)
	val := mantissa
	for i := uint64(0); i < exponent; i++ {
		val *= 10
	}
	return val
}

// SizeCentimeters returns the decoded Size field in centimeters.
func (r *LOCRecord) SizeCentimeters() uint64 { return locDecode(r.Size) }

// LatitudeDegrees returns latitude relative to the equator in degrees
// (positive = north).
func (r *LOCRecord) LatitudeDegrees() float64 {
	return (float64(int64(r.Latitude)-1<<31) / 3600000.0)
}

// LongitudeDegrees returns longitude relative to the prime meridian in
// degrees (positive = east).
func (r *LOCRecord) LongitudeDegrees() float64 {
	return (float64(int64(r.Longitude)-1<<31) / 3600000.0)
}

// AltitudeMeters returns altitude in meters above the reference ellipsoid.
func (r *LOCRecord) AltitudeMeters() float64 {
	return (float64(int64(r.Altitude)) - 10000000.0) / 100.0
}
