// Package fanout implements the in-process broadcast feed carrying
// notification envelopes from the bridge core to external subscriber
// adapters (WebSocket, NATS, tests).
package fanout

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Strob0t/CodeBridge/internal/domain/notify"
	"github.com/Strob0t/CodeBridge/internal/port/broadcast"
)

// DefaultBuffer is the per-subscriber envelope buffer used by adapters that
// have no reason to pick their own.
const DefaultBuffer = 64

type subscriber struct {
	ch      chan notify.Envelope
	dropped atomic.Uint64
}

// Fanout delivers each published envelope to every attached subscriber.
// Producers are never blocked: a subscriber that cannot keep up loses
// envelopes beyond its buffer.
type Fanout struct {
	mu     sync.RWMutex
	subs   map[string]*subscriber
	closed bool
}

// New creates an empty fan-out feed.
func New() *Fanout {
	return &Fanout{subs: make(map[string]*subscriber)}
}

// Subscribe attaches a new reader with the given buffer size. A non-positive
// buffer gets DefaultBuffer. Subscribing to a closed feed returns a
// subscription whose channel is already closed.
func (f *Fanout) Subscribe(buffer int) *broadcast.Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	id := uuid.NewString()
	ch := make(chan notify.Envelope, buffer)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		close(ch)
		return &broadcast.Subscription{ID: id, C: ch}
	}

	f.subs[id] = &subscriber{ch: ch}
	return &broadcast.Subscription{ID: id, C: ch}
}

// Unsubscribe detaches a reader and closes its channel. Unknown IDs are a
// no-op.
func (f *Fanout) Unsubscribe(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(sub.ch)
	}
}

// Publish delivers env to all current subscribers without blocking.
// Zero subscribers is not an error; a full subscriber buffer drops the
// envelope for that subscriber only.
func (f *Fanout) Publish(env notify.Envelope) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	for id, sub := range f.subs {
		select {
		case sub.ch <- env:
		default:
			sub.dropped.Add(1)
			slog.Debug("fanout subscriber lagging, envelope dropped",
				"subscriber", id, "method", env.Method)
		}
	}
}

// SubscriberCount returns the number of attached subscribers.
func (f *Fanout) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

// Dropped returns how many envelopes the given subscriber has lost to a
// full buffer. Unknown IDs report zero.
func (f *Fanout) Dropped(id string) uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if sub, ok := f.subs[id]; ok {
		return sub.dropped.Load()
	}
	return 0
}

// Close detaches all subscribers and closes their channels. Publishing after
// Close is a no-op.
func (f *Fanout) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true

	for id, sub := range f.subs {
		delete(f.subs, id)
		close(sub.ch)
	}
}
