// Package dnskit is an asynchronous client-side DNS library: it encodes
// and decodes DNS wire messages, exchanges them over UDP, TCP, DNS-over-TLS,
// DNS-over-HTTPS, or DNS-over-QUIC, and can validate a reply's DNSSEC chain
// of trust from its signing zone up to a pinned root trust anchor.
package dnskit

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/dnsscience/dnskit/internal/atomics"
	"github.com/dnsscience/dnskit/internal/concurrency"
	"github.com/dnsscience/dnskit/internal/dispatch"
	"github.com/dnsscience/dnskit/internal/dnserr"
	"github.com/dnsscience/dnskit/internal/dnssec"
	"github.com/dnsscience/dnskit/internal/logsink"
	"github.com/dnsscience/dnskit/internal/metrics"
	"github.com/dnsscience/dnskit/internal/netutil"
	"github.com/dnsscience/dnskit/internal/transport"
	"github.com/dnsscience/dnskit/internal/wire"
)

// Transport selects the wire protocol a Query dials.
type Transport int

const (
	TransportDNS Transport = iota
	TransportTLS
	TransportHTTPS
	TransportQUIC
	TransportSystem
)

func (t Transport) String() string {
	switch t {
	case TransportDNS:
		return "dns"
	case TransportTLS:
		return "tls"
	case TransportHTTPS:
		return "https"
	case TransportQUIC:
		return "quic"
	case TransportSystem:
		return "system"
	default:
		return "unknown"
	}
}

// TransportOptions configures how every server address in a Query is
// dialed.
type TransportOptions struct {
	// DnsPrefersTcp selects TCP over UDP for the plain-DNS transport.
	DnsPrefersTcp bool
	// TimeoutSeconds bounds connect+send+receive for one server address.
	TimeoutSeconds uint8
	// UserAgent overrides the HTTP User-Agent sent by the HTTPS transport.
	UserAgent string
	// HttpsBootstrapIps pins the HTTPS transport to specific IPs, bypassing
	// system name resolution of the URL's host.
	HttpsBootstrapIps []string
	// UseHttp2 enables HTTP/2 for the HTTPS transport.
	UseHttp2 bool
}

// DefaultTransportOptions returns the library's recommended defaults.
func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		DnsPrefersTcp:  true,
		TimeoutSeconds: 5,
		UserAgent:      "dnskit/1.0 (github.com/dnsscience/dnskit)",
	}
}

// QueryOptions configures one query's behavior.
type QueryOptions struct {
	// DnssecRequested sets the EDNS "DNSSEC OK" bit on the outbound query.
	DnssecRequested bool
}

// Query combines a question with transport configuration and one or more
// server addresses to try it against.
type Query struct {
	transportKind   Transport
	options         TransportOptions
	serverAddresses []string
	recordType      RecordType
	name            string
	queryOptions    QueryOptions

	message    *wire.Message
	dispatcher *dispatch.Dispatcher
}

// New validates the supplied configuration and builds a Query. For a
// reverse lookup (recordType == RecordTypePTR and name is an IP literal)
// the question name is rewritten to the in-addr.arpa/ip6.arpa form.
func New(t Transport, options TransportOptions, serverAddresses []string, recordType RecordType, name string, queryOptions QueryOptions) (*Query, error) {
	if len(serverAddresses) == 0 {
		return nil, dnserr.New(dnserr.KindInvalidData, "at least one server address is required")
	}
	if len(serverAddresses) > dispatch.MaxServers {
		return nil, dnserr.New(dnserr.KindInvalidData, "too many server addresses")
	}
	for _, addr := range serverAddresses {
		if err := validateConfiguration(t, addr); err != nil {
			return nil, err
		}
	}
	if options.TimeoutSeconds == 0 {
		return nil, dnserr.New(dnserr.KindInvalidData, "timeoutSeconds must be non-zero")
	}

	queryName := name
	if recordType == RecordTypePTR {
		if rewritten, err := wire.ReverseAddrName(name); err == nil {
			queryName = rewritten
		}
	}

	msg, err := wire.NewQuery(queryName, recordType)
	if err != nil {
		return nil, err
	}

	return &Query{
		transportKind:   t,
		options:         options,
		serverAddresses: serverAddresses,
		recordType:      recordType,
		name:            queryName,
		queryOptions:    queryOptions,
		message:         msg,
	}, nil
}

// validateConfiguration checks a transport/server-address pair against the
// expected address grammar before any I/O is attempted.
func validateConfiguration(t Transport, serverAddress string) error {
	switch t {
	case TransportDNS, TransportTLS, TransportQUIC:
		return netutil.ValidateServerAddress(serverAddress)
	case TransportHTTPS:
		return netutil.ValidateHTTPSURL(serverAddress)
	case TransportSystem:
		return nil
	default:
		return dnserr.New(dnserr.KindInvalidData, "unknown transport")
	}
}

// Execute runs the query across every configured server address and
// returns the first successful reply.
func (q *Query) Execute(ctx context.Context) (*Message, error) {
	timer := atomics.NewTimer()
	encoded, err := q.message.Encode(wire.EncodeOptions{
		DNSSECRequested: q.queryOptions.DnssecRequested,
		ForHTTPSGet:     q.transportKind == TransportHTTPS,
	})
	if err != nil {
		return nil, err
	}

	clients, err := q.buildClients()
	if err != nil {
		return nil, err
	}

	q.dispatcher = dispatch.NewDispatcher()
	raw, err := q.dispatcher.Execute(ctx, encoded, clients)
	if err != nil {
		metrics.ObserveQuery(q.transportKind.String(), "failure", seconds(timer))
		logsink.Log(logsink.LevelDebug, "query failed", map[string]any{
			"name":           q.name,
			"error":          err.Error(),
			"serverFailures": len(q.dispatcher.Failures()),
		})
		return nil, err
	}

	reply, err := wire.Decode(raw)
	if err != nil {
		metrics.ObserveQuery(q.transportKind.String(), "failure", seconds(timer))
		return nil, err
	}
	metrics.ObserveQuery(q.transportKind.String(), "success", seconds(timer))
	return reply, nil
}

func seconds(t *atomics.Timer) float64 {
	return float64(t.Stop()) / float64(time.Second)
}

// Authenticate validates the DNSSEC chain of trust for a reply previously
// produced by Execute on this Query, reusing the transport client that
// produced it.
func (q *Query) Authenticate(ctx context.Context, reply *Message) (*DNSSECResult, error) {
	if q.dispatcher == nil {
		return nil, dnserr.New(dnserr.KindInternalError, "Authenticate called before a successful Execute")
	}
	winner, ok := q.dispatcher.Winner()
	if !ok {
		return nil, dnserr.New(dnserr.KindInternalError, "no winning transport client to reuse")
	}

	limiter := concurrency.NewLimiter(20, 5)
	result, err := dnssec.Authenticate(ctx, winner, limiter, RootTrustAnchors, reply, q.name)
	if err != nil {
		return nil, err
	}
	metrics.ObserveDNSSEC(result.SignatureVerified, result.ChainTrusted)
	return result, nil
}

func (q *Query) buildClients() ([]transport.Client, error) {
	timeout := time.Duration(q.options.TimeoutSeconds) * time.Second
	clients := make([]transport.Client, 0, len(q.serverAddresses))
	for _, addr := range q.serverAddresses {
		switch q.transportKind {
		case TransportDNS:
			clients = append(clients, transport.NewDNSClient(addr, q.options.DnsPrefersTcp, timeout))
		case TransportTLS:
			clients = append(clients, transport.NewTLSClient(addr, tlsServerName(addr), timeout))
		case TransportQUIC:
			clients = append(clients, transport.NewQUICClient(addr, tlsServerName(addr), timeout))
		case TransportHTTPS:
			c, err := transport.NewHTTPSClient(addr, q.options.UserAgent, q.options.HttpsBootstrapIps, q.options.UseHttp2, timeout)
			if err != nil {
				return nil, err
			}
			clients = append(clients, c)
		default:
			return nil, dnserr.New(dnserr.KindInvalidData, fmt.Sprintf("transport %s has no client implementation in this core", q.transportKind))
		}
	}
	return clients, nil
}

// tlsServerName strips any port from addr for use as the TLS ServerName.
func tlsServerName(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
