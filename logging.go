package dnskit

import "github.com/dnsscience/dnskit/internal/logsink"

// Level is the severity of a LogSink event.
type Level = logsink.Level

const (
	LevelDebug = logsink.LevelDebug
	LevelInfo  = logsink.LevelInfo
	LevelWarn  = logsink.LevelWarn
	LevelError = logsink.LevelError
)

// LogSink receives structured log events. It is a single write-only
// interface installed once at startup; this library never prints to
// stdio itself, since unlike a standalone binary it has no console of
// its own to own.
type LogSink = logsink.Sink

// SetLogSink installs the process-wide logging sink. It may be called once
// at startup; the reference is read-only thereafter. A nil sink disables
// logging.
func SetLogSink(s LogSink) {
	logsink.Set(s)
}
