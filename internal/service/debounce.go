// Package service contains the bridge's background tasks: the selection
// debouncer and the command dispatcher. Each owns its state exclusively and
// talks to the rest of the process only through channels and ports.
package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Strob0t/CodeBridge/internal/domain/notify"
	"github.com/Strob0t/CodeBridge/internal/port/broadcast"
)

// DefaultQuietPeriod is how long the selection stream must stay silent
// before the current candidate is emitted.
const DefaultQuietPeriod = 150 * time.Millisecond

// Debouncer coalesces a high-frequency stream of selection candidates down
// to one emission per pause in activity. The latest candidate always wins;
// intermediate candidates within a quiet window are discarded.
type Debouncer struct {
	quiet time.Duration
	sink  broadcast.Publisher

	mu     sync.Mutex
	inbox  chan *notify.Selection
	closed bool

	done chan struct{}
}

// NewDebouncer creates a debouncer emitting into sink. A non-positive quiet
// duration gets DefaultQuietPeriod.
func NewDebouncer(sink broadcast.Publisher, quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{
		quiet: quiet,
		sink:  sink,
		inbox: make(chan *notify.Selection, 1),
		done:  make(chan struct{}),
	}
}

// Start launches the background task. Call once.
func (d *Debouncer) Start() {
	go d.run()
}

// Offer publishes a candidate without blocking. If an earlier candidate is
// still queued it is replaced; only the most recent candidate in a quiet
// window is ever considered. A nil candidate never triggers an emission.
func (d *Debouncer) Offer(sel *notify.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	for {
		select {
		case d.inbox <- sel:
			return
		default:
		}
		// Inbox full: evict the stale candidate and retry.
		select {
		case <-d.inbox:
		default:
		}
	}
}

// Close shuts the inbox; the background task finishes its current window
// without emitting and exits. Offer becomes a no-op.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.closed {
		d.closed = true
		close(d.inbox)
	}
}

// Done is closed when the background task has exited.
func (d *Debouncer) Done() <-chan struct{} {
	return d.done
}

func (d *Debouncer) run() {
	defer close(d.done)

	var lastSent *notify.Selection

	for {
		cur, ok := <-d.inbox
		if !ok {
			return
		}

		timer := time.NewTimer(d.quiet)

	window:
		for {
			select {
			case next, ok := <-d.inbox:
				if !ok {
					timer.Stop()
					return
				}
				// Newer candidate: restart the quiet period from zero.
				cur = next
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(d.quiet)

			case <-timer.C:
				if cur != nil && (lastSent == nil || !lastSent.SamePlace(*cur)) {
					d.sink.Publish(notify.NewEnvelope(notify.MethodSelectionChanged, cur))
					lastSent = cur
					slog.Debug("debounced selection emitted",
						"file", cur.FilePath,
						"start_line", cur.Selection.Start.Line,
						"end_line", cur.Selection.End.Line)
				}
				break window
			}
		}
	}
}
