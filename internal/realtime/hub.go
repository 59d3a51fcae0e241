// Package realtime fans change events out to live observers.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain/models"
)

// Relay carries serialized events between server instances
type Relay interface {
	Publish(ctx context.Context, payload []byte) error
	StartForwarder(ctx context.Context, onMsg func(payload []byte)) error
	Close() error
}

// Config sizes the hub's buffers
type Config struct {
	QueueSize      int           // Outbound events waiting for the dispatcher
	ObserverBuffer int           // Serialized events waiting per observer
	RelayTimeout   time.Duration // Upper bound on one relay publish
}

// DefaultConfig returns the buffer sizes used by the server
func DefaultConfig() Config {
	return Config{
		QueueSize:      256,
		ObserverBuffer: 32,
		RelayTimeout:   2 * time.Second,
	}
}

// Hub is the process-wide observer registry. Publish enqueues into a bounded
// channel drained by one dispatcher goroutine, so writers never wait on observers.
type Hub struct {
	cfg    Config
	relay  Relay
	logger *slog.Logger

	mu        sync.RWMutex
	observers map[uuid.UUID]*Observer

	queue     chan *models.ChangeEvent
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a hub. relay may be nil for single-instance delivery.
func NewHub(cfg Config, relay Relay, logger *slog.Logger) *Hub {
	def := DefaultConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = def.ObserverBuffer
	}
	if cfg.RelayTimeout <= 0 {
		cfg.RelayTimeout = def.RelayTimeout
	}

	return &Hub{
		cfg:       cfg,
		relay:     relay,
		logger:    logger.With("component", "hub"),
		observers: make(map[uuid.UUID]*Observer),
		queue:     make(chan *models.ChangeEvent, cfg.QueueSize),
		done:      make(chan struct{}),
	}
}

// Start launches the dispatcher and, with a relay, the relay forwarder.
// It runs until ctx is cancelled or Stop is called.
func (h *Hub) Start(ctx context.Context) error {
	var err error
	h.startOnce.Do(func() {
		if h.relay != nil {
			if err = h.relay.StartForwarder(ctx, h.broadcast); err != nil {
				return
			}
		}

		h.wg.Add(1)
		go h.dispatch(ctx)
		h.logger.Info("hub started", "relay", h.relay != nil)
	})
	return err
}

// Stop halts dispatching and closes every observer
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		for id, o := range h.observers {
			o.close()
			delete(h.observers, id)
		}
		h.mu.Unlock()

		if h.relay != nil {
			if err := h.relay.Close(); err != nil {
				h.logger.Warn("relay close failed", "error", err)
			}
		}
		h.logger.Info("hub stopped")
	})
}

// Publish implements services.ChangeNotifier. It never blocks: a full queue or
// a stopped hub drops the event.
func (h *Hub) Publish(event *models.ChangeEvent) {
	if event == nil {
		return
	}

	select {
	case <-h.done:
		h.logger.Debug("hub stopped, dropping event", "type", event.Type, "document_id", event.DocumentID)
		return
	default:
	}

	select {
	case h.queue <- event:
	default:
		h.logger.Warn("outbound queue full, dropping event", "type", event.Type, "document_id", event.DocumentID)
	}
}

// Subscribe registers a new observer and queues the connection acknowledgment to it
func (h *Hub) Subscribe() *Observer {
	o := newObserver(h.cfg.ObserverBuffer)

	if ack, err := json.Marshal(models.NewConnectionEvent()); err == nil {
		o.offer(ack)
	}

	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		o.close()
		return o
	default:
	}
	h.observers[o.ID] = o
	count := len(h.observers)
	h.mu.Unlock()

	h.logger.Debug("observer subscribed", "observer_id", o.ID, "observers", count)
	return o
}

// Unsubscribe removes and closes an observer. Safe to call more than once.
func (h *Hub) Unsubscribe(o *Observer) {
	if o == nil {
		return
	}

	h.mu.Lock()
	delete(h.observers, o.ID)
	count := len(h.observers)
	h.mu.Unlock()

	o.close()
	h.logger.Debug("observer unsubscribed", "observer_id", o.ID, "observers", count)
}

// ObserverCount returns the number of registered observers
func (h *Hub) ObserverCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

func (h *Hub) dispatch(ctx context.Context) {
	defer h.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case event := <-h.queue:
			h.route(ctx, event)
		}
	}
}

// route serializes an event once and hands it to the relay, or straight to
// local observers when there is no relay or the relay fails
func (h *Hub) route(ctx context.Context, event *models.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	if h.relay != nil {
		rctx, cancel := context.WithTimeout(ctx, h.cfg.RelayTimeout)
		err := h.relay.Publish(rctx, payload)
		cancel()
		if err == nil {
			return
		}
		if !errors.Is(err, context.Canceled) {
			h.logger.Warn("relay publish failed, delivering locally", "type", event.Type, "error", err)
		}
	}

	h.broadcast(payload)
}

// broadcast offers payload to a snapshot of the open observers
func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	snapshot := make([]*Observer, 0, len(h.observers))
	for _, o := range h.observers {
		snapshot = append(snapshot, o)
	}
	h.mu.RUnlock()

	for _, o := range snapshot {
		if !o.IsOpen() {
			continue
		}
		if !o.offer(payload) {
			h.logger.Warn("dropping event; observer buffer full", "observer_id", o.ID)
		}
	}
}
