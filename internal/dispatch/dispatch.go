// Package dispatch fans a single encoded query out across one transport
// client per server address and returns the first successful reply.
package dispatch

import (
	"context"
	"sync"

	"github.com/dnsscience/dnskit/internal/atomics"
	"github.com/dnsscience/dnskit/internal/dnserr"
	"github.com/dnsscience/dnskit/internal/transport"
)

// MaxServers is the largest number of server addresses a single dispatch
// will fan out to.
const MaxServers = 10

type result struct {
	client transport.Client
	reply  []byte
	err    error
}

// Dispatcher starts one transport.Client per server address concurrently
// and collects results in completion order, using a plain wait-group
// fan-out left unbounded in goroutine count since MaxServers already caps
// concurrency far below pool-sizing concerns.
type Dispatcher struct {
	winner   *atomics.Once[transport.Client]
	failures *atomics.Array[error]
}

// NewDispatcher constructs a Dispatcher ready for one Execute call.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		winner:   atomics.NewOnce[transport.Client](),
		failures: atomics.NewArray[error](),
	}
}

// Execute starts clients[i].Exchange(ctx, req) concurrently for every
// client and returns the first successful reply. If all fail, it returns
// the error from whichever client failed first in completion order.
func (d *Dispatcher) Execute(ctx context.Context, req []byte, clients []transport.Client) ([]byte, error) {
	if len(clients) == 0 {
		return nil, dnserr.New(dnserr.KindInvalidData, "no server addresses configured")
	}
	if len(clients) > MaxServers {
		return nil, dnserr.New(dnserr.KindInvalidData, "too many server addresses")
	}

	ch := make(chan result, len(clients))
	var wg sync.WaitGroup
	wg.Add(len(clients))
	for _, c := range clients {
		c := c
		go func() {
			defer wg.Done()
			reply, err := c.Exchange(ctx, req)
			ch <- result{client: c, reply: reply, err: err}
		}()
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	var firstErr error
	for r := range ch {
		if r.err == nil {
			d.winner.Set(r.client)
			return r.reply, nil
		}
		d.failures.Append(r.err)
		if firstErr == nil {
			firstErr = r.err
		}
	}
	return nil, firstErr
}

// Winner returns the client that produced the successful reply, if any, so
// DNSSEC side queries reuse it instead of re-racing all addresses.
func (d *Dispatcher) Winner() (transport.Client, bool) {
	return d.winner.Get()
}

// Failures returns every per-client error observed during Execute, in
// completion order. Execute stops reading results at the first success, so
// errors from clients that complete after it are not recorded; the list is
// empty when Execute has not yet been called or the first client to
// complete succeeded. Execute itself only ever surfaces the first error, so
// callers who want the full picture (logging, diagnostics) use this
// instead.
func (d *Dispatcher) Failures() []error {
	return d.failures.Snapshot()
}
