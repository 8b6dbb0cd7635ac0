// Package nats forwards editor notifications to a NATS subject so that
// tools outside the editor process can observe them.
package nats

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/Strob0t/CodeBridge/internal/port/broadcast"
)

// DefaultSubject is the subject envelopes are published to when the
// configuration does not name one.
const DefaultSubject = "editor.notifications"

// Forwarder republishes every notification envelope from the local
// stream onto a NATS subject. Notifications are ephemeral, so plain
// core publish is used; there is no replay for late joiners.
type Forwarder struct {
	nc      *nats.Conn
	subject string
	sub     *broadcast.Subscription
	stream  broadcast.Stream
	done    chan struct{}
}

// Connect dials NATS and starts forwarding from the given stream.
func Connect(url, subject string, stream broadcast.Stream) (*Forwarder, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	f := &Forwarder{
		nc:      nc,
		subject: subject,
		sub:     stream.Subscribe(0),
		stream:  stream,
		done:    make(chan struct{}),
	}
	go f.run()

	slog.Info("nats forwarding started", "url", url, "subject", subject)
	return f, nil
}

func (f *Forwarder) run() {
	defer close(f.done)

	for env := range f.sub.C {
		data, err := json.Marshal(env)
		if err != nil {
			slog.Error("nats marshal failed", "method", env.Method, "error", err)
			continue
		}
		if err := f.nc.Publish(f.subject, data); err != nil {
			slog.Error("nats publish failed", "subject", f.subject, "error", err)
		}
	}
}

// IsConnected reports whether the underlying connection is up.
func (f *Forwarder) IsConnected() bool {
	return f.nc.IsConnected()
}

// Close stops forwarding and shuts down the NATS connection.
func (f *Forwarder) Close() error {
	f.stream.Unsubscribe(f.sub.ID)
	<-f.done

	if err := f.nc.Flush(); err != nil {
		slog.Debug("nats flush failed", "error", err)
	}
	f.nc.Close()
	return nil
}
