package dnskit

import "github.com/dnsscience/dnskit/internal/dnserr"

// Kind enumerates this library's error taxonomy: a fixed set of
// transport-level and DNSSEC-specific failure categories. Callers should
// switch on Kind rather than string-matching Error().
type Kind = dnserr.Kind

// Error is the error type returned by every fallible entry point in this
// library. It carries a Kind plus either a wrapped Cause or a short Reason
// string. No stack traces are attached, and no inspection-target data is
// recorded above debug level (see the logging package).
type Error = dnserr.Error

const (
	KindUnknown                 = dnserr.KindUnknown
	KindConnectionError         = dnserr.KindConnectionError
	KindTimedOut                = dnserr.KindTimedOut
	KindUnexpectedResponse      = dnserr.KindUnexpectedResponse
	KindEmptyResponse           = dnserr.KindEmptyResponse
	KindInvalidData             = dnserr.KindInvalidData
	KindIncorrectType           = dnserr.KindIncorrectType
	KindMissingData             = dnserr.KindMissingData
	KindExcessiveResponseSize   = dnserr.KindExcessiveResponseSize
	KindUnsupportedAlgorithm    = dnserr.KindUnsupportedAlgorithm
	KindInvalidURL              = dnserr.KindInvalidURL
	KindHTTPError               = dnserr.KindHTTPError
	KindInvalidContentType      = dnserr.KindInvalidContentType
	KindNoSignatures            = dnserr.KindNoSignatures
	KindMissingKeys             = dnserr.KindMissingKeys
	KindUntrustedRootSigningKey = dnserr.KindUntrustedRootSigningKey
	KindSignatureFailed         = dnserr.KindSignatureFailed
	KindInvalidResponse         = dnserr.KindInvalidResponse
	KindBadSigningKey           = dnserr.KindBadSigningKey
	KindInternalError           = dnserr.KindInternalError
)

// IsKind reports whether err is a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	return dnserr.Is(err, kind)
}
