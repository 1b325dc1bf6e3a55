// Package netutil validates server-address syntax:
// `a.b.c.d[:port]` / `[v6]:port` / `v6` for DNS/TLS/QUIC, and
// `https://host[:port]/path` (no query string) for HTTPS.
package netutil

import (
	"net"
	"net/url"
	"strings"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// ValidateServerAddress checks a DNS/TLS/QUIC server address: a bare IPv4
// or IPv6 literal, optionally followed by `:port`, or a bracketed IPv6
// literal with `:port`.
func ValidateServerAddress(addr string) error {
	if addr == "" {
		return dnserr.New(dnserr.KindInvalidData, "empty server address")
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		if net.ParseIP(host) == nil {
			return dnserr.New(dnserr.KindInvalidData, "server address host is not an IP literal: "+host)
		}
		return nil
	}
	if net.ParseIP(addr) != nil {
		return nil
	}
	return dnserr.New(dnserr.KindInvalidData, "not a valid server address: "+addr)
}

// ValidateHTTPSURL checks a DoH server URL: scheme https (case-insensitive),
// host present, no query string.
func ValidateHTTPSURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return dnserr.Wrap(dnserr.KindInvalidURL, raw, err)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return dnserr.New(dnserr.KindInvalidURL, "scheme must be https: "+raw)
	}
	if u.Host == "" {
		return dnserr.New(dnserr.KindInvalidURL, "missing host: "+raw)
	}
	if u.RawQuery != "" {
		return dnserr.New(dnserr.KindInvalidURL, "URL must not carry a query string: "+raw)
	}
	return nil
}
