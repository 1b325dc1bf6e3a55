package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dnsscience/dnskit/internal/transport"
)

type fakeClient struct {
	delay   time.Duration
	reply   []byte
	err     error
	state   transport.State
	id      string
}

func (f *fakeClient) Exchange(ctx context.Context, req []byte) ([]byte, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeClient) State() transport.State { return f.state }

func TestExecuteReturnsFirstSuccess(t *testing.T) {
	slow := &fakeClient{delay: 20 * time.Millisecond, err: errors.New("slow failure")}
	fast := &fakeClient{delay: 1 * time.Millisecond, reply: []byte("ok")}

	d := NewDispatcher()
	reply, err := d.Execute(context.Background(), []byte("req"), []transport.Client{slow, fast})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if string(reply) != "ok" {
		t.Errorf("reply = %q, want %q", reply, "ok")
	}
	winner, ok := d.Winner()
	if !ok || winner != transport.Client(fast) {
		t.Error("Winner() should be the fast client")
	}
}

func TestExecuteReturnsFirstErrorWhenAllFail(t *testing.T) {
	errA := errors.New("A failed")
	errB := errors.New("B failed")
	fastFail := &fakeClient{delay: 1 * time.Millisecond, err: errA}
	slowFail := &fakeClient{delay: 20 * time.Millisecond, err: errB}

	d := NewDispatcher()
	_, err := d.Execute(context.Background(), []byte("req"), []transport.Client{fastFail, slowFail})
	if !errors.Is(err, errA) {
		t.Errorf("Execute() error = %v, want %v", err, errA)
	}
	if _, ok := d.Winner(); ok {
		t.Error("Winner() should be unset when all clients fail")
	}
}

func TestExecuteRejectsEmptyClientList(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Execute(context.Background(), []byte("req"), nil)
	if err == nil {
		t.Fatal("expected error for empty client list")
	}
}

func TestExecuteRejectsTooManyClients(t *testing.T) {
	clients := make([]transport.Client, MaxServers+1)
	for i := range clients {
		clients[i] = &fakeClient{reply: []byte("ok")}
	}
	d := NewDispatcher()
	_, err := d.Execute(context.Background(), []byte("req"), clients)
	if err == nil {
		t.Fatal("expected error for too many server addresses")
	}
}
