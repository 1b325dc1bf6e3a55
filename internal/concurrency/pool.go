// Package concurrency provides the bounded fan-out primitives used by
// DNSSEC resource collection: a small worker pool and a rate limiter.
package concurrency

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/dnsscience/dnskit/internal/atomics"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("concurrency: pool closed")

// Job is a unit of work submitted to a Pool.
type Job func(ctx context.Context) error

// Pool is a small bounded worker pool used for the DNSSEC authenticator's
// per-(zone, record-type) fetch fan-out. It keeps a plain
// submit/execute/panic-recovery shape and drops queue-timeout and
// hot-resize features, since a single validation run is short-lived and
// its job count is already bounded by the zone list.
type Pool struct {
	queue  chan *jobWrapper
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	closed *atomics.Bool
}

type jobWrapper struct {
	job      Job
	ctx      context.Context
	resultCh chan error
}

// NewPool starts a pool with the given number of workers (0 defaults to
// runtime.NumCPU()).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:  make(chan *jobWrapper, workers*4),
		ctx:    ctx,
		cancel: cancel,
		closed: atomics.NewBool(false),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case w, ok := <-p.queue:
			if !ok {
				return
			}
			p.run(w)
		}
	}
}

func (p *Pool) run(w *jobWrapper) {
	defer func() {
		if r := recover(); r != nil {
			select {
			case w.resultCh <- errors.New("concurrency: job panicked"):
			default:
			}
		}
	}()
	w.resultCh <- w.job(w.ctx)
}

// Submit queues job and blocks until it completes or ctx is canceled.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	done, err := p.SubmitAsync(ctx, job)
	if err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitAsync queues job and returns immediately with a channel that
// receives its result, letting a caller fan out many jobs before waiting
// on any of them. The channel is buffered so a worker never blocks
// delivering to a receiver that gave up.
func (p *Pool) SubmitAsync(ctx context.Context, job Job) (<-chan error, error) {
	if p.closed.Get() {
		return nil, ErrPoolClosed
	}

	w := &jobWrapper{job: job, ctx: ctx, resultCh: make(chan error, 1)}
	select {
	case p.queue <- w:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ctx.Done():
		return nil, ErrPoolClosed
	}
	return w.resultCh, nil
}

// Close stops accepting new jobs and waits for in-flight jobs to finish.
// Safe to call more than once; only the first call closes the queue.
func (p *Pool) Close() {
	var alreadyClosed bool
	p.closed.Update(func(prev bool) bool {
		alreadyClosed = prev
		return true
	})
	if alreadyClosed {
		return
	}

	close(p.queue)
	p.wg.Wait()
	p.cancel()
}
