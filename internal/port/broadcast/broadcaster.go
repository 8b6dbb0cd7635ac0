// Package broadcast defines the port for fanning notification envelopes out
// to external subscribers.
package broadcast

import "github.com/Strob0t/CodeBridge/internal/domain/notify"

// Publisher sends an envelope to every currently attached subscriber.
// Publishing never blocks: a subscriber whose buffer is full loses that
// envelope, and publishing with zero subscribers is a silent no-op.
type Publisher interface {
	Publish(env notify.Envelope)
}

// Stream allows subscribers to attach to and detach from the envelope feed.
// Each subscriber receives every envelope published after it attaches, in
// publish order, subject to its own buffer.
type Stream interface {
	Subscribe(buffer int) *Subscription
	Unsubscribe(id string)
}

// Subscription is one attached reader of the envelope feed. C is closed when
// the subscriber is detached or the feed shuts down.
type Subscription struct {
	ID string
	C  <-chan notify.Envelope
}
