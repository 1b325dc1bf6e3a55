package transport

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// doqALPN is the ALPN token for DNS-over-QUIC (RFC 9250 §4.1.1).
const doqALPN = "doq"

// QUICClient exchanges a message over DNS-over-QUIC: ALPN doq to port 853.
// On a new bidirectional stream it sends the length-prefixed message,
// receives the length-prefixed reply, then closes the stream.
type QUICClient struct {
	base
	Address    string
	ServerName string
	Timeout    time.Duration
}

// NewQUICClient builds a DoQ client dialing addr (host[:port], port
// defaults to 853).
func NewQUICClient(addr, serverName string, timeout time.Duration) *QUICClient {
	return &QUICClient{base: newBase(), Address: withDefaultPort(addr, "853"), ServerName: serverName, Timeout: timeout}
}

func (c *QUICClient) Exchange(ctx context.Context, req []byte) ([]byte, error) {
	ctx, cancel := deadlineFor(ctx, c.Timeout)
	defer cancel()

	c.setState(StateConnecting)
	tlsConf := &tls.Config{
		ServerName: c.ServerName,
		NextProtos: []string{doqALPN},
		MinVersion: tls.VersionTLS12,
	}

	conn, err := quic.DialAddr(ctx, c.Address, tlsConf, nil)
	if err != nil {
		c.setState(StateFailed)
		return nil, dnserr.Wrap(dnserr.KindConnectionError, c.Address, err)
	}
	defer conn.CloseWithError(0, "")
	c.setState(StateReady)

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		c.setState(StateFailed)
		return nil, dnserr.Wrap(dnserr.KindConnectionError, c.Address, err)
	}
	defer stream.Close()

	if dl, ok := ctx.Deadline(); ok {
		stream.SetDeadline(dl)
	}

	reply, err := exchangeLengthPrefixed(stream, req)
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
