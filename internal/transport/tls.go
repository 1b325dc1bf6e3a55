package transport

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// TLSClient exchanges a message over DNS-over-TLS: TCP framing over TLS
// 1.2+ on port 853. Framing is identical to DNSClient's TCP path.
type TLSClient struct {
	base
	Address    string
	ServerName string
	Timeout    time.Duration
}

// NewTLSClient builds a DoT client dialing addr (host[:port], port defaults
// to 853). serverName overrides the certificate hostname check; if empty
// the dialed host is used.
func NewTLSClient(addr, serverName string, timeout time.Duration) *TLSClient {
	return &TLSClient{base: newBase(), Address: withDefaultPort(addr, "853"), ServerName: serverName, Timeout: timeout}
}

func (c *TLSClient) Exchange(ctx context.Context, req []byte) ([]byte, error) {
	ctx, cancel := deadlineFor(ctx, c.Timeout)
	defer cancel()

	c.setState(StateConnecting)
	dialer := &tls.Dialer{Config: &tls.Config{
		ServerName: c.ServerName,
		MinVersion: tls.VersionTLS12,
	}}
	conn, err := dialer.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		c.setState(StateFailed)
		return nil, dnserr.Wrap(dnserr.KindConnectionError, c.Address, err)
	}
	defer conn.Close()
	c.setState(StateReady)

	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	}

	reply, err := exchangeLengthPrefixed(conn, req)
	if err != nil {
		c.setState(StateFailed)
		if e := timeoutError(ctx); e != nil {
			return nil, e
		}
		if existing, ok := err.(*dnserr.Error); ok {
			return nil, existing
		}
		return nil, dnserr.Wrap(dnserr.KindConnectionError, c.Address, err)
	}
	c.setState(StateReceived)
	return reply, nil
}
