package oplog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see hardware calls in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("object", event.Object.String()),
		slog.String("op", event.Op.String()),
		slog.String("status", event.Status.String()),
	}

	if event.Key != "" {
		attrs = append(attrs, slog.String("key", event.Key))
	}
	if len(event.Attrs) > 0 {
		attrs = append(attrs, slog.Int("attrs", len(event.Attrs)))
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", event.Duration))
	}
	if event.Retried {
		attrs = append(attrs, slog.Bool("retried", true))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "hal", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
