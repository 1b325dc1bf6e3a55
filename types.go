package dnskit

import (
	"github.com/dnsscience/dnskit/internal/dnssec"
	"github.com/dnsscience/dnskit/internal/wire"
)

// Message, Question, and Answer alias the wire codec's types directly:
// one data model is shared by encode, decode, and DNSSEC canonicalization,
// so the public API re-exports it rather than wrapping it.
type (
	Message  = wire.Message
	Question = wire.Question
	Answer   = wire.Answer
	RData    = wire.RData
)

// Record-data variants.
type (
	ARecord      = wire.ARecord
	AAAARecord   = wire.AAAARecord
	NameRData    = wire.NameRData
	SOARecord    = wire.SOARecord
	MXRecord     = wire.MXRecord
	SRVRecord    = wire.SRVRecord
	TXTRecord    = wire.TXTRecord
	LOCRecord    = wire.LOCRecord
	SVCBRecord   = wire.SVCBRecord
	DSRecord     = wire.DSRecord
	RRSIGRecord  = wire.RRSIGRecord
	DNSKEYRecord = wire.DNSKEYRecord
	NSECRecord   = wire.NSECRecord
	NSEC3Record  = wire.NSEC3Record
	ErrorRecord  = wire.ErrorRecord
)

// RecordType is the 16-bit DNS record type of a question or answer.
type RecordType = wire.Type

const (
	RecordTypeA      = wire.TypeA
	RecordTypeNS     = wire.TypeNS
	RecordTypeCNAME  = wire.TypeCNAME
	RecordTypeSOA    = wire.TypeSOA
	RecordTypePTR    = wire.TypePTR
	RecordTypeMX     = wire.TypeMX
	RecordTypeTXT    = wire.TypeTXT
	RecordTypeAAAA   = wire.TypeAAAA
	RecordTypeLOC    = wire.TypeLOC
	RecordTypeSRV    = wire.TypeSRV
	RecordTypeNAPTR  = wire.TypeNAPTR
	RecordTypeDS     = wire.TypeDS
	RecordTypeRRSIG  = wire.TypeRRSIG
	RecordTypeNSEC   = wire.TypeNSEC
	RecordTypeDNSKEY = wire.TypeDNSKEY
	RecordTypeNSEC3  = wire.TypeNSEC3
	RecordTypeSVCB   = wire.TypeSVCB
	RecordTypeHTTPS  = wire.TypeHTTPS
)

// DNSSECResource and DNSSECResult alias the authenticator's result types.
type (
	DNSSECResource = dnssec.Resource
	DNSSECResult   = dnssec.Result
)
