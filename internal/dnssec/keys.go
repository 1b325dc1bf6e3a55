package dnssec

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/asn1"
	"encoding/binary"
	"math/big"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// Algorithm numbers this package verifies (RFC 8624 recommended set,
// minus EdDSA). RSA/SHA-1 is parsed so a DNSKEY carrying it doesn't abort
// collection, but rejected at verification time.
const (
	AlgRSASHA1   = 5
	AlgRSASHA256 = 8
	AlgRSASHA512 = 10
	AlgECDSAP256 = 13
	AlgECDSAP384 = 14
)

// DS digest type numbers this package verifies (RFC 4509, RFC 6605).
const (
	DigestSHA1   = 1
	DigestSHA256 = 2
	DigestSHA384 = 4
)

// verifySignature checks sig over signedData using the public key encoded
// in dnskeyRData for the given algorithm. RSA public keys are re-wrapped as
// a PKCS#1 ASN.1 SEQUENCE and ECDSA signatures as an ASN.1 SEQUENCE of (r,
// s): crypto/x509 and crypto/ecdsa expect ASN.1, not the RFC 3110/6605
// raw wire encodings DNSKEY and RRSIG carry.
func verifySignature(algorithm uint8, dnskeyRData, signedData, sig []byte) error {
	switch algorithm {
	case AlgRSASHA256:
		return verifyRSA(dnskeyRData, signedData, sig, crypto.SHA256)
	case AlgRSASHA512:
		return verifyRSA(dnskeyRData, signedData, sig, crypto.SHA512)
	case AlgECDSAP256:
		return verifyECDSA(elliptic.P256(), 32, dnskeyRData, signedData, sig, sha256Hash)
	case AlgECDSAP384:
		return verifyECDSA(elliptic.P384(), 48, dnskeyRData, signedData, sig, sha384Hash)
	case AlgRSASHA1:
		return dnserr.New(dnserr.KindUnsupportedAlgorithm, "RSA/SHA-1 is parsed but rejected at verification")
	default:
		return dnserr.New(dnserr.KindUnsupportedAlgorithm, "unknown algorithm")
	}
}

func sha256Hash(b []byte) []byte { h := sha256.Sum256(b); return h[:] }
func sha384Hash(b []byte) []byte { h := sha512.Sum384(b); return h[:] }

// verifyRSA parses (exponent-length, exponent, modulus) per RFC 3110 §2,
// re-wraps it as a PKCS#1 RSAPublicKey DER blob, and checks a PKCS#1 v1.5
// signature.
func verifyRSA(dnskeyRData, signedData, sig []byte, hash crypto.Hash) error {
	n, e, err := parseRSAKey(dnskeyRData)
	if err != nil {
		return err
	}
	der, err := asn1.Marshal(struct {
		N *big.Int
		E *big.Int
	}{N: n, E: e})
	if err != nil {
		return dnserr.Wrap(dnserr.KindBadSigningKey, "ASN.1 marshal of RSA key", err)
	}
	pub, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return dnserr.Wrap(dnserr.KindBadSigningKey, "PKCS#1 parse of RSA key", err)
	}

	var digest []byte
	switch hash {
	case crypto.SHA256:
		d := sha256.Sum256(signedData)
		digest = d[:]
	case crypto.SHA512:
		d := sha512.Sum512(signedData)
		digest = d[:]
	}
	if err := rsa.VerifyPKCS1v15(pub, hash, digest, sig); err != nil {
		return dnserr.Wrap(dnserr.KindSignatureFailed, "RSA signature verification failed", err)
	}
	return nil
}

func parseRSAKey(rdata []byte) (n, e *big.Int, err error) {
	if len(rdata) < 1 {
		return nil, nil, dnserr.New(dnserr.KindBadSigningKey, "empty RSA key")
	}
	expLen := int(rdata[0])
	pos := 1
	if expLen == 0 {
		if len(rdata) < 3 {
			return nil, nil, dnserr.New(dnserr.KindBadSigningKey, "truncated RSA extended exponent length")
		}
		expLen = int(binary.BigEndian.Uint16(rdata[1:3]))
		pos = 3
	}
	if pos+expLen > len(rdata) {
		return nil, nil, dnserr.New(dnserr.KindBadSigningKey, "RSA exponent overruns key")
	}
	e = new(big.Int).SetBytes(rdata[pos : pos+expLen])
	n = new(big.Int).SetBytes(rdata[pos+expLen:])
	if n.Sign() == 0 {
		return nil, nil, dnserr.New(dnserr.KindBadSigningKey, "empty RSA modulus")
	}
	return n, e, nil
}

// verifyECDSA parses a raw X||Y public key (halfLen bytes each), re-wraps
// the raw R||S signature as an ASN.1 SEQUENCE, and verifies.
func verifyECDSA(curve elliptic.Curve, halfLen int, dnskeyRData, signedData, sig []byte, hashFn func([]byte) []byte) error {
	if len(dnskeyRData) != halfLen*2 {
		return dnserr.New(dnserr.KindBadSigningKey, "ECDSA public key has wrong length")
	}
	x := new(big.Int).SetBytes(dnskeyRData[:halfLen])
	y := new(big.Int).SetBytes(dnskeyRData[halfLen:])
	pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}

	if len(sig) != halfLen*2 {
		return dnserr.New(dnserr.KindBadSigningKey, "ECDSA signature has wrong length")
	}
	r := new(big.Int).SetBytes(sig[:halfLen])
	s := new(big.Int).SetBytes(sig[halfLen:])
	der, err := asn1.Marshal(struct{ R, S *big.Int }{R: r, S: s})
	if err != nil {
		return dnserr.Wrap(dnserr.KindBadSigningKey, "ASN.1 marshal of ECDSA signature", err)
	}

	digest := hashFn(signedData)
	if !ecdsa.VerifyASN1(pub, digest, der) {
		return dnserr.New(dnserr.KindSignatureFailed, "ECDSA signature verification failed")
	}
	return nil
}
