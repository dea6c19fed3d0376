package report

import (
	"context"
	"log/slog"
)

// Reporter receives scan events one at a time.
// Implementations must be safe for concurrent use: the scanner shares a
// single Reporter across all of its workers.
type Reporter interface {
	// Report handles m. The only errors are failures of the underlying
	// output; the caller decides whether to keep scanning.
	Report(m Message) error
}

// Logger is the secondary channel for notices that are not part of the
// primary output, such as skipped binary files and scan errors.
type Logger interface {
	Log(level slog.Level, msg string)
}

// SlogLogger sends notices to the default slog logger.
type SlogLogger struct{}

// Log implements Logger.
func (SlogLogger) Log(level slog.Level, msg string) {
	slog.Log(context.Background(), level, msg)
}

// Silent discards every message.
type Silent struct{}

// Report implements Reporter.
func (Silent) Report(Message) error {
	return nil
}

func loggerOrDefault(l Logger) Logger {
	if l == nil {
		return SlogLogger{}
	}
	return l
}
