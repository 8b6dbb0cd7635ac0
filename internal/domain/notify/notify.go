// Package notify defines the notification payloads the bridge emits to
// external subscribers, and the JSON-RPC envelope they travel in.
package notify

import (
	"encoding/json"
	"log/slog"

	"github.com/Strob0t/CodeBridge/internal/domain/lsp"
)

// Notification methods carried by envelopes.
const (
	MethodSelectionChanged = "selection_changed"
	MethodAtMentioned      = "at_mentioned"
)

// SelectionSpan describes the selected region of a selection notification.
type SelectionSpan struct {
	Start   lsp.Position `json:"start"`
	End     lsp.Position `json:"end"`
	IsEmpty bool         `json:"isEmpty"`
}

// Selection is emitted when the user's selection settles on a region.
type Selection struct {
	Text      string        `json:"text"`
	FilePath  string        `json:"filePath"`
	FileURL   string        `json:"fileUrl"`
	Selection SelectionSpan `json:"selection"`
}

// SamePlace reports whether two selections cover the same file region.
// Text content is deliberately excluded: the debouncer suppresses repeats
// by position, not by what happened to be read from disk.
func (s Selection) SamePlace(o Selection) bool {
	return s.FilePath == o.FilePath &&
		s.Selection.Start == o.Selection.Start &&
		s.Selection.End == o.Selection.End
}

// Mention is emitted when the user explicitly references a file region.
// Mentions bypass the debouncer and are delivered once, immediately.
type Mention struct {
	FilePath  string `json:"filePath"`
	LineStart uint32 `json:"lineStart"`
	LineEnd   uint32 `json:"lineEnd"`
}

// Envelope is the JSON-RPC 2.0 notification wrapper delivered to
// subscribers. It is never mutated after construction.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// NewEnvelope wraps a payload in a JSON-RPC notification envelope. A payload
// that fails to marshal degrades to an empty params object rather than
// aborting delivery.
func NewEnvelope(method string, payload any) Envelope {
	params, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("notification payload marshal failed", "method", method, "error", err)
		params = json.RawMessage(`{}`)
	}
	return Envelope{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	}
}
