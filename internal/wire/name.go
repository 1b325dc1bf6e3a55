package wire

import (
	"fmt"
	"net"
	"strings"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

const (
	maxLabelLength  = 63
	maxNameLength   = 255
	maxPointerDepth = 10 // compression pointer chains longer than this are rejected
)

// EncodeName encodes a dot-terminated absolute name into wire form: a
// sequence of length-prefixed labels terminated by a zero byte. Case is
// preserved: the encoder never lowercases.
func EncodeName(name string) ([]byte, error) {
	if name == "." || name == "" {
		return []byte{0}, nil
	}
	trimmed := strings.TrimSuffix(name, ".")
	labels := strings.Split(trimmed, ".")

	var out []byte
	for _, label := range labels {
		if len(label) == 0 {
			return nil, dnserr.New(dnserr.KindInvalidData, "empty non-terminal label")
		}
		if len(label) > maxLabelLength {
			return nil, dnserr.New(dnserr.KindInvalidData, fmt.Sprintf("label %q exceeds %d bytes", label, maxLabelLength))
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0)

	if len(out) > maxNameLength {
		return nil, dnserr.New(dnserr.KindInvalidData, "encoded name exceeds 255 bytes")
	}
	return out, nil
}

// DecodeName decodes a name starting at offset within msg, following
// compression pointers per RFC 1035 §4.1.4. It returns the decoded,
// dot-terminated name and the offset at which the caller should resume
// parsing (one past the terminating zero, or one past the first pointer
// taken).
//
// The pointer walk is bounded to maxPointerDepth hops and every target is
// validated to lie strictly before the current read position, which also
// rejects self- and forward-referencing pointer loops.
func DecodeName(msg []byte, offset int) (string, int, error) {
	var sb strings.Builder
	pos := offset
	resume := -1
	depth := 0
	empty := true

	for {
		if pos >= len(msg) {
			return "", 0, dnserr.New(dnserr.KindInvalidData, "name offset out of range")
		}
		lead := msg[pos]

		if lead&0xC0 == 0xC0 {
			if pos+1 >= len(msg) {
				return "", 0, dnserr.New(dnserr.KindInvalidData, "truncated compression pointer")
			}
			ptr := (int(lead&0x3F) << 8) | int(msg[pos+1])
			if resume == -1 {
				resume = pos + 2
			}
			depth++
			if depth > maxPointerDepth {
				return "", 0, dnserr.New(dnserr.KindInvalidData, "compression pointer depth exceeded")
			}
			if ptr >= len(msg) || ptr >= pos {
				return "", 0, dnserr.New(dnserr.KindInvalidData, "invalid compression pointer target")
			}
			pos = ptr
			continue
		}

		if lead == 0 {
			if resume == -1 {
				resume = pos + 1
			}
			break
		}

		length := int(lead)
		if length > maxLabelLength {
			return "", 0, dnserr.New(dnserr.KindInvalidData, "label exceeds 63 bytes")
		}
		pos++
		if pos+length > len(msg) {
			return "", 0, dnserr.New(dnserr.KindInvalidData, "label runs past end of message")
		}
		label := msg[pos : pos+length]
		if !isPrintableASCIINoDot(label) {
			return "", 0, dnserr.New(dnserr.KindInvalidData, "label contains non-printable or '.' byte")
		}
		sb.Write(label)
		sb.WriteByte('.')
		pos += length
		empty = false

		if sb.Len() > maxNameLength {
			return "", 0, dnserr.New(dnserr.KindInvalidData, "decoded name exceeds 255 bytes")
		}
	}

	if empty {
		return ".", resume, nil
	}
	return sb.String(), resume, nil
}

func isPrintableASCIINoDot(b []byte) bool {
	for _, c := range b {
		if c == '.' || c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// lowercaseName lowercases a dot-terminated name for DNSSEC canonicalization.
// This is kept textually distinct from the case-insensitive comparisons
// used elsewhere (EqualNames) to avoid conflating the two operations.
func lowercaseName(name string) string {
	return strings.ToLower(name)
}

// EqualNames compares two wire names case-insensitively (RFC 1035 §2.3.3).
func EqualNames(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ReverseAddrName rewrites an IPv4/IPv6 literal into its in-addr.arpa /
// ip6.arpa PTR query name.
func ReverseAddrName(literal string) (string, error) {
	ip := net.ParseIP(literal)
	if ip == nil {
		return "", dnserr.New(dnserr.KindInvalidData, fmt.Sprintf("%q is not an IP literal", literal))
	}
	if v4 := ip.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa.", v4[3], v4[2], v4[1], v4[0]), nil
	}
	v6 := ip.To16()
	var sb strings.Builder
	for i := len(v6) - 1; i >= 0; i-- {
		lo := v6[i] & 0x0F
		hi := v6[i] >> 4
		fmt.Fprintf(&sb, "%x.%x.", lo, hi)
	}
	sb.WriteString("ip6.arpa.")
	return sb.String(), nil
}
