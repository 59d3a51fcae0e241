package sse

import (
	"context"
	"log/slog"
	"time"
)

// KeepAliveWriter abstracts the mechanism for writing keep-alive messages
type KeepAliveWriter interface {
	// WriteKeepAlive writes a keep-alive message; an error means the connection is gone
	WriteKeepAlive() error
}

// TickerKeepAlive sends keep-alive pings at a fixed interval until the context
// ends or a write fails
type TickerKeepAlive struct {
	interval time.Duration
}

// NewTickerKeepAlive creates a ticker-based keep-alive
func NewTickerKeepAlive(interval time.Duration) *TickerKeepAlive {
	return &TickerKeepAlive{interval: interval}
}

// Start runs the keep-alive loop in a goroutine.
// The returned channel closes when the loop exits.
func (k *TickerKeepAlive) Start(ctx context.Context, writer KeepAliveWriter, logger *slog.Logger) <-chan struct{} {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := writer.WriteKeepAlive(); err != nil {
					logger.Debug("keep-alive write failed, stopping", "error", err)
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return stopped
}
