package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/dnsscience/dnskit/internal/dnserr"
	"github.com/dnsscience/dnskit/internal/pool"
)

// DNSClient exchanges a message over plain DNS, choosing UDP or TCP per
// PrefersTCP.
type DNSClient struct {
	base
	Address    string
	PrefersTCP bool
	Timeout    time.Duration
}

// NewDNSClient builds a plain-DNS client dialing addr (host[:port], port
// defaults to 53).
func NewDNSClient(addr string, prefersTCP bool, timeout time.Duration) *DNSClient {
	return &DNSClient{base: newBase(), Address: withDefaultPort(addr, "53"), PrefersTCP: prefersTCP, Timeout: timeout}
}

func (c *DNSClient) Exchange(ctx context.Context, req []byte) ([]byte, error) {
	ctx, cancel := deadlineFor(ctx, c.Timeout)
	defer cancel()

	if c.PrefersTCP {
		return c.exchangeTCP(ctx, req)
	}
	return c.exchangeUDP(ctx, req)
}

func (c *DNSClient) exchangeUDP(ctx context.Context, req []byte) ([]byte, error) {
	c.setState(StateConnecting)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", c.Address)
	if err != nil {
		c.setState(StateFailed)
		return nil, dnserr.Wrap(dnserr.KindConnectionError, c.Address, err)
	}
	defer conn.Close()
	c.setState(StateReady)

	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	}

	if _, err := conn.Write(req); err != nil {
		c.setState(StateFailed)
		return nil, c.classifyIOErr(ctx, err)
	}
	c.setState(StateSent)

	buf := pool.GetReplyBuffer()
	defer pool.PutReplyBuffer(buf)
	n, err := conn.Read(buf)
	if err != nil {
		c.setState(StateFailed)
		return nil, c.classifyIOErr(ctx, err)
	}
	if n > MaxReplySize {
		c.setState(StateFailed)
		return nil, dnserr.New(dnserr.KindExcessiveResponseSize, fmt.Sprintf("%d bytes", n))
	}
	c.setState(StateReceived)
	reply := make([]byte, n)
	copy(reply, buf[:n])
	return reply, nil
}

func (c *DNSClient) exchangeTCP(ctx context.Context, req []byte) ([]byte, error) {
	c.setState(StateConnecting)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.Address)
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
		return nil, c.classifyIOErr(ctx, err)
	}
	c.setState(StateReceived)
	return reply, nil
}

// exchangeLengthPrefixed implements the shared 2-byte-length-prefix framing
// used by TCP, DoT, and DoQ.
func exchangeLengthPrefixed(conn io.ReadWriter, req []byte) ([]byte, error) {
	framed := make([]byte, 2+len(req))
	binary.BigEndian.PutUint16(framed[:2], uint16(len(req)))
	copy(framed[2:], req)
	if _, err := conn.Write(framed); err != nil {
		return nil, err
	}

	var lenBuf [2]byte
	if _, err := io.ReadFull(conn, lenBuf[:]); err != nil {
		return nil, err
	}
	msgLen := binary.BigEndian.Uint16(lenBuf[:])
	if msgLen == 0 {
		return nil, dnserr.New(dnserr.KindEmptyResponse, "zero-length TCP reply")
	}
	if msgLen > MaxReplySize {
		return nil, dnserr.New(dnserr.KindExcessiveResponseSize, fmt.Sprintf("%d bytes", msgLen))
	}

	reply := make([]byte, msgLen)
	if _, err := io.ReadFull(conn, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *DNSClient) classifyIOErr(ctx context.Context, err error) error {
	if e := timeoutError(ctx); e != nil {
		return e
	}
	if existing, ok := err.(*dnserr.Error); ok {
		return existing
	}
	return dnserr.Wrap(dnserr.KindConnectionError, c.Address, err)
}

// withDefaultPort appends defaultPort to addr if addr has none, handling
// both bracketed (`[v6]:port`) and bare (`v6`) IPv6 literals per the
// expected server-address grammar.
func withDefaultPort(addr, defaultPort string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	// No port present: addr is a bare hostname, IPv4 literal, or unbracketed
	// IPv6 literal. JoinHostPort brackets IPv6 automatically.
	return net.JoinHostPort(addr, defaultPort)
}
