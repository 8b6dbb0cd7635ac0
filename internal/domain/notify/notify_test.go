package notify

import (
	"encoding/json"
	"testing"

	"github.com/Strob0t/CodeBridge/internal/domain/lsp"
)

func TestNewEnvelope(t *testing.T) {
	m := Mention{FilePath: "y.rs", LineStart: 3, LineEnd: 9}
	env := NewEnvelope(MethodAtMentioned, m)

	if env.JSONRPC != "2.0" {
		t.Errorf("jsonrpc = %q, want 2.0", env.JSONRPC)
	}
	if env.Method != MethodAtMentioned {
		t.Errorf("method = %q, want %q", env.Method, MethodAtMentioned)
	}

	var got Mention
	if err := json.Unmarshal(env.Params, &got); err != nil {
		t.Fatalf("unmarshal params: %v", err)
	}
	if got != m {
		t.Errorf("params round-trip = %+v, want %+v", got, m)
	}
}

func TestNewEnvelopeMarshalFailure(t *testing.T) {
	// A channel cannot be marshaled — params degrade to an empty object.
	env := NewEnvelope("bad", make(chan int))
	if string(env.Params) != "{}" {
		t.Errorf("params = %s, want {}", env.Params)
	}
	if env.Method != "bad" || env.JSONRPC != "2.0" {
		t.Errorf("envelope fields degraded: %+v", env)
	}
}

func TestEnvelopeWireFieldNames(t *testing.T) {
	sel := Selection{
		Text:     "let x = 1;",
		FilePath: "/w/x.rs",
		FileURL:  "file:///w/x.rs",
		Selection: SelectionSpan{
			Start: lsp.Position{Line: 0, Character: 0},
			End:   lsp.Position{Line: 0, Character: 10},
		},
	}
	data, err := json.Marshal(NewEnvelope(MethodSelectionChanged, sel))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var params map[string]json.RawMessage
	if err := json.Unmarshal(raw["params"], &params); err != nil {
		t.Fatalf("unmarshal params: %v", err)
	}
	for _, key := range []string{"text", "filePath", "fileUrl", "selection"} {
		if _, ok := params[key]; !ok {
			t.Errorf("params missing wire field %q", key)
		}
	}
	var span map[string]json.RawMessage
	if err := json.Unmarshal(params["selection"], &span); err != nil {
		t.Fatalf("unmarshal selection: %v", err)
	}
	if _, ok := span["isEmpty"]; !ok {
		t.Error("selection missing wire field isEmpty")
	}
}

func TestSamePlace(t *testing.T) {
	base := Selection{
		FilePath: "x.rs",
		Selection: SelectionSpan{
			Start: lsp.Position{Line: 0, Character: 0},
			End:   lsp.Position{Line: 0, Character: 5},
		},
	}

	same := base
	same.Text = "different text, same region"
	if !base.SamePlace(same) {
		t.Error("expected same place regardless of text")
	}

	moved := base
	moved.Selection.End = lsp.Position{Line: 0, Character: 8}
	if base.SamePlace(moved) {
		t.Error("expected different place for different end position")
	}

	otherFile := base
	otherFile.FilePath = "y.rs"
	if base.SamePlace(otherFile) {
		t.Error("expected different place for different file")
	}
}
