package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Observer is one live connection receiving serialized change events
type Observer struct {
	ID uuid.UUID

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newObserver(buffer int) *Observer {
	return &Observer{
		ID:   uuid.New(),
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Messages yields serialized events in publish order
func (o *Observer) Messages() <-chan []byte { return o.send }

// Done is closed when the observer is unsubscribed or the hub stops
func (o *Observer) Done() <-chan struct{} { return o.done }

// IsOpen reports whether the observer still accepts events
func (o *Observer) IsOpen() bool {
	select {
	case <-o.done:
		return false
	default:
		return true
	}
}

// offer queues payload without blocking; false means the buffer was full
func (o *Observer) offer(payload []byte) bool {
	select {
	case o.send <- payload:
		return true
	default:
		return false
	}
}

func (o *Observer) close() {
	o.closeOnce.Do(func() { close(o.done) })
}
