package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Strob0t/CodeBridge/internal/domain/command"
)

type recordingOpener struct {
	mu      sync.Mutex
	targets []string
	fail    map[string]error
}

func (o *recordingOpener) Open(target string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err, ok := o.fail[target]; ok {
		return err
	}
	o.targets = append(o.targets, target)
	return nil
}

func (o *recordingOpener) opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.targets...)
}

func u32(v uint32) *uint32 { return &v }

func TestDispatcherOpensTargets(t *testing.T) {
	opener := &recordingOpener{}
	queue := make(chan command.Command, 4)

	d := NewDispatcher(opener, queue)
	d.Start()

	queue <- command.OpenFile{FilePath: "a.rs", Line: u32(10), Column: u32(4)}
	queue <- command.OpenFile{FilePath: "a.rs", Line: u32(10)}
	queue <- command.OpenFile{FilePath: "a.rs"}
	close(queue)

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not drain and exit")
	}

	want := []string{"a.rs:10:4", "a.rs:10", "a.rs"}
	got := opener.opened()
	if len(got) != len(want) {
		t.Fatalf("opened %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("opened[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDispatcherContinuesAfterSpawnFailure(t *testing.T) {
	opener := &recordingOpener{
		fail: map[string]error{"bad.rs": errors.New("spawn failed")},
	}
	queue := make(chan command.Command, 2)

	d := NewDispatcher(opener, queue)
	d.Start()

	queue <- command.OpenFile{FilePath: "bad.rs"}
	queue <- command.OpenFile{FilePath: "good.rs"}
	close(queue)

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not exit")
	}

	got := opener.opened()
	if len(got) != 1 || got[0] != "good.rs" {
		t.Errorf("opened = %v, want [good.rs]", got)
	}
}
