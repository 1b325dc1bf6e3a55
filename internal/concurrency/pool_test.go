package concurrency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitSuccess(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	executed := false
	err := pool.Submit(context.Background(), func(ctx context.Context) error {
		executed = true
		return nil
	})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if !executed {
		t.Error("job did not execute")
	}
}

func TestSubmitPropagatesError(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	want := errors.New("boom")
	err := pool.Submit(context.Background(), func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("Submit() error = %v, want %v", err, want)
	}
}

func TestSubmitRecoversPanic(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	err := pool.Submit(context.Background(), func(ctx context.Context) error {
		panic("job exploded")
	})
	if err == nil {
		t.Fatal("expected error from panicking job")
	}
}

func TestSubmitAfterCloseFails(t *testing.T) {
	pool := NewPool(1)
	pool.Close()

	err := pool.Submit(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Submit() after Close error = %v, want ErrPoolClosed", err)
	}
}

// TestSubmitAsyncDoesNotBlockCaller confirms SubmitAsync returns before the
// job runs, so a caller can enqueue many jobs before waiting on any of
// them.
func TestSubmitAsyncDoesNotBlockCaller(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	release := make(chan struct{})
	done, err := pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
		<-release
		return nil
	})
	if err != nil {
		t.Fatalf("SubmitAsync() error: %v", err)
	}

	select {
	case <-done:
		t.Fatal("job result available before it was released")
	default:
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("job error = %v, want nil", err)
	}
}

// TestSubmitAsyncFansOutConcurrently submits one job per worker, each
// blocked on a shared gate, and requires every one to have started before
// any is released: a serial submitter would deadlock this test.
func TestSubmitAsyncFansOutConcurrently(t *testing.T) {
	const jobs = 8
	pool := NewPool(jobs)
	defer pool.Close()

	var started int32
	allStarted := make(chan struct{})
	release := make(chan struct{})

	dones := make([]<-chan error, jobs)
	for i := 0; i < jobs; i++ {
		done, err := pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
			if atomic.AddInt32(&started, 1) == jobs {
				close(allStarted)
			}
			<-release
			return nil
		})
		if err != nil {
			t.Fatalf("SubmitAsync() error: %v", err)
		}
		dones[i] = done
	}

	select {
	case <-allStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("not all jobs started concurrently within deadline")
	}

	close(release)
	for _, done := range dones {
		if err := <-done; err != nil {
			t.Errorf("job error = %v, want nil", err)
		}
	}
}

func TestLimiterWait(t *testing.T) {
	l := NewLimiter(1000, 5)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
}
