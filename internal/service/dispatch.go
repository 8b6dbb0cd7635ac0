package service

import (
	"fmt"
	"log/slog"

	"github.com/Strob0t/CodeBridge/internal/domain/command"
	"github.com/Strob0t/CodeBridge/internal/port/editorctl"
)

// Dispatcher consumes inbound commands and applies them to the editor's
// control surface, one at a time. A failed command is logged and skipped;
// it never halts the dispatcher.
type Dispatcher struct {
	opener editorctl.Opener
	queue  <-chan command.Command
	done   chan struct{}
}

// NewDispatcher creates a dispatcher draining queue into opener.
func NewDispatcher(opener editorctl.Opener, queue <-chan command.Command) *Dispatcher {
	return &Dispatcher{
		opener: opener,
		queue:  queue,
		done:   make(chan struct{}),
	}
}

// Start launches the background task. Call once.
func (d *Dispatcher) Start() {
	go d.run()
}

// Done is closed when the queue has been closed and drained.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for cmd := range d.queue {
		switch c := cmd.(type) {
		case command.OpenFile:
			target := c.Target()
			if err := d.opener.Open(target); err != nil {
				slog.Error("failed to open file in editor", "target", target, "error", err)
				continue
			}
			slog.Info("opened file in editor", "target", target)
		default:
			slog.Warn("unhandled command variant", "type", fmt.Sprintf("%T", cmd))
		}
	}
}
