// Package transport dials a single DNS server over one wire transport and
// exchanges one encoded message for one encoded reply.
package transport

import (
	"context"
	"time"

	"github.com/dnsscience/dnskit/internal/atomics"
	"github.com/dnsscience/dnskit/internal/dnserr"
)

// MaxReplySize is the largest reply this package will accept over any
// transport.
const MaxReplySize = 4096

// State is a transport client's externally observable lifecycle stage:
// connecting -> ready -> (sent) -> received, or -> failed. StateSent is
// set only on the UDP and HTTPS paths. No client sets StateClosed: a
// successful exchange ends in StateReceived even after its connection is
// closed.
type State int

const (
	StateConnecting State = iota
	StateReady
	StateSent
	StateReceived
	StateClosed
	StateFailed
)

// Client exchanges one encoded DNS message for one encoded reply over a
// single transport, enforcing an overall deadline covering connect + send +
// receive.
type Client interface {
	// Exchange sends req and returns the raw reply bytes, or a typed error.
	Exchange(ctx context.Context, req []byte) ([]byte, error)
	// State reports the client's current lifecycle stage.
	State() State
}

// base holds the state tracking shared by every Client implementation: an
// atomics.Int so it can be read concurrently by tests and metrics without
// a bespoke lock per transport.
type base struct {
	state *atomics.Int
}

func newBase() base {
	return base{state: atomics.NewInt(int64(StateConnecting))}
}

func (b base) State() State { return State(b.state.Get()) }

func (b base) setState(s State) { b.state.Set(int64(s)) }

// deadlineFor derives the absolute deadline for a single exchange, honoring
// a caller-supplied context deadline if one is already nearer.
func deadlineFor(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func timeoutError(ctx context.Context) error {
	if ctx.Err() != nil {
		return dnserr.New(dnserr.KindTimedOut, "deadline exceeded")
	}
	return nil
}
