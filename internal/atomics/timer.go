package atomics

import "time"

// Timer captures a monotonic start instant and reports elapsed nanoseconds
// on Stop. It is not safe for concurrent use by multiple goroutines on the
// same instance (callers needing that should pair it with an Int).
type Timer struct {
	start time.Time
}

// NewTimer starts a timer immediately.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed nanoseconds since NewTimer.
func (t *Timer) Stop() int64 {
	return time.Since(t.start).Nanoseconds()
}
