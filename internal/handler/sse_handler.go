package handler

import (
	"context"
	"log/slog"
	"net/http"

	"inkwell/internal/handler/sse"
	"inkwell/internal/httputil"
	"inkwell/internal/realtime"
)

// ObserverHub registers live connections for change events
type ObserverHub interface {
	Subscribe() *realtime.Observer
	Unsubscribe(o *realtime.Observer)
}

// SSEHandler streams change events over Server-Sent Events
type SSEHandler struct {
	hub    ObserverHub
	config *sse.Config
	logger *slog.Logger
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(hub ObserverHub, config *sse.Config, logger *slog.Logger) *SSEHandler {
	if config == nil {
		config = sse.DefaultConfig()
	}
	return &SSEHandler{
		hub:    hub,
		config: config,
		logger: logger,
	}
}

// StreamEvents handles GET /api/events.
// The first frame is the connection acknowledgment; the stream ends when the
// client disconnects or the hub shuts down.
func (h *SSEHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	writer, err := sse.NewWriter(w)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	observer := h.hub.Subscribe()
	defer h.hub.Unsubscribe(observer)

	h.logger.Info("SSE observer connected",
		"observer_id", observer.ID,
		"remote_addr", r.RemoteAddr,
	)

	writer.WriteHeaders()

	// The keep-alive goroutine must be gone before the handler returns and
	// the ResponseWriter is released.
	ctx, cancel := context.WithCancel(r.Context())
	keepAliveStopped := sse.NewTickerKeepAlive(h.config.KeepAliveInterval).Start(ctx, writer, h.logger)
	defer func() {
		cancel()
		<-keepAliveStopped
	}()

	for {
		select {
		case payload := <-observer.Messages():
			if err := writer.WriteData(payload); err != nil {
				h.logger.Debug("SSE write failed, closing stream",
					"observer_id", observer.ID,
					"error", err,
				)
				return
			}
		case <-keepAliveStopped:
			return
		case <-observer.Done():
			return
		case <-ctx.Done():
			h.logger.Debug("SSE client disconnected", "observer_id", observer.ID)
			return
		}
	}
}
