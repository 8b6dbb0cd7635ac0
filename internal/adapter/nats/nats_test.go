package nats

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Strob0t/CodeBridge/internal/domain/notify"
	"github.com/Strob0t/CodeBridge/internal/fanout"
)

// testConnect starts a forwarder or skips the test if NATS_URL is not set.
func testConnect(t *testing.T, subject string, stream *fanout.Fanout) *Forwarder {
	t.Helper()

	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("requires NATS_URL")
	}

	f, err := Connect(url, subject, stream)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() {
		if err := f.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return f
}

// uniqueSubject avoids collisions between parallel test runs.
func uniqueSubject(t *testing.T) string {
	t.Helper()
	return "editor.notifications.test." + t.Name()
}

func TestForwarderPublishesEnvelopes(t *testing.T) {
	feed := fanout.New()
	subject := uniqueSubject(t)
	f := testConnect(t, subject, feed)

	// Observe the subject with an independent connection.
	nc, err := nats.Connect(os.Getenv("NATS_URL"))
	if err != nil {
		t.Fatalf("observer connect: %v", err)
	}
	defer nc.Close()

	sub, err := nc.SubscribeSync(subject)
	if err != nil {
		t.Fatalf("SubscribeSync: %v", err)
	}
	defer func() { _ = sub.Unsubscribe() }()
	if err := nc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	mention := notify.Mention{FilePath: "src/lib.rs", LineStart: 1, LineEnd: 4}
	feed.Publish(notify.NewEnvelope(notify.MethodAtMentioned, mention))

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg: %v", err)
	}

	var env notify.Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Method != notify.MethodAtMentioned {
		t.Errorf("method = %q, want %q", env.Method, notify.MethodAtMentioned)
	}

	var got notify.Mention
	if err := json.Unmarshal(env.Params, &got); err != nil {
		t.Fatalf("unmarshal mention: %v", err)
	}
	if got != mention {
		t.Errorf("mention = %+v, want %+v", got, mention)
	}

	if !f.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
}

func TestForwarderCloseDetaches(t *testing.T) {
	feed := fanout.New()
	f := testConnect(t, uniqueSubject(t), feed)

	if got := feed.SubscriberCount(); got != 1 {
		t.Fatalf("subscribers = %d, want 1", got)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := feed.SubscriberCount(); got != 0 {
		t.Errorf("subscribers after close = %d, want 0", got)
	}

	// Publishing after close must not panic.
	feed.Publish(notify.NewEnvelope(notify.MethodSelectionChanged, nil))
}
