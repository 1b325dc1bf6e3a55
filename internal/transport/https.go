package transport

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/http2"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// HTTPSClient exchanges a message over DNS-over-HTTPS via GET (RFC 8484):
// instead of parsing an incoming `dns=` parameter the way a DoH listener
// would, it constructs one.
type HTTPSClient struct {
	base
	URL          string
	UserAgent    string
	BootstrapIPs []string
	UseHTTP2     bool
	Timeout      time.Duration

	client *http.Client
}

// NewHTTPSClient validates target as an `https://host[:port]/path` URL with
// no query string and builds a client for it.
func NewHTTPSClient(target, userAgent string, bootstrapIPs []string, useHTTP2 bool, timeout time.Duration) (*HTTPSClient, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, dnserr.Wrap(dnserr.KindInvalidURL, target, err)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return nil, dnserr.New(dnserr.KindInvalidURL, "scheme must be https")
	}
	if u.RawQuery != "" {
		return nil, dnserr.New(dnserr.KindInvalidURL, "URL must not carry a query string")
	}

	c := &HTTPSClient{
		base:         newBase(),
		URL:          target,
		UserAgent:    userAgent,
		BootstrapIPs: bootstrapIPs,
		UseHTTP2:     useHTTP2,
		Timeout:      timeout,
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}
	if len(bootstrapIPs) > 0 {
		host := u.Hostname()
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			_, port, err := net.SplitHostPort(addr)
			if err != nil {
				port = "443"
			}
			var d net.Dialer
			return d.DialContext(ctx, network, net.JoinHostPort(bootstrapIPs[0], port))
		}
		transport.TLSClientConfig.ServerName = host
	}
	if useHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, dnserr.Wrap(dnserr.KindInternalError, "http2 configuration", err)
		}
	}
	c.client = &http.Client{Transport: transport}

	return c, nil
}

func (c *HTTPSClient) Exchange(ctx context.Context, req []byte) ([]byte, error) {
	ctx, cancel := deadlineFor(ctx, c.Timeout)
	defer cancel()

	c.setState(StateConnecting)
	encoded := base64.RawURLEncoding.EncodeToString(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"?dns="+encoded, nil)
	if err != nil {
		c.setState(StateFailed)
		return nil, dnserr.Wrap(dnserr.KindInvalidURL, c.URL, err)
	}
	httpReq.Header.Set("Accept", "application/dns-message")
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}
	c.setState(StateReady)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.setState(StateFailed)
		if e := timeoutError(ctx); e != nil {
			return nil, e
		}
		return nil, dnserr.Wrap(dnserr.KindConnectionError, c.URL, err)
	}
	defer resp.Body.Close()
	c.setState(StateSent)

	if resp.StatusCode != http.StatusOK {
		c.setState(StateFailed)
		return nil, dnserr.HTTPError(resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.EqualFold(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]), "application/dns-message") {
		c.setState(StateFailed)
		return nil, dnserr.ContentTypeError(contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxReplySize+1))
	if err != nil {
		c.setState(StateFailed)
		return nil, dnserr.Wrap(dnserr.KindConnectionError, c.URL, err)
	}
	if len(body) > MaxReplySize {
		c.setState(StateFailed)
		return nil, dnserr.New(dnserr.KindExcessiveResponseSize, fmt.Sprintf("%d bytes", len(body)))
	}
	c.setState(StateReceived)
	return body, nil
}
