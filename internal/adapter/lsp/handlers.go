package lsp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Strob0t/CodeBridge/internal/domain/lsp"
	"github.com/Strob0t/CodeBridge/internal/domain/notify"
)

func (s *Server) onInitialize(id json.RawMessage, raw json.RawMessage) {
	slog.Info("language server initializing")

	var params lsp.InitializeParams
	if err := json.Unmarshal(raw, &params); err != nil {
		slog.Warn("malformed initialize params", "error", err)
	}
	for _, folder := range params.WorkspaceFolders {
		slog.Info("workspace folder", "uri", folder.URI)
	}

	result := lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: lsp.SyncIncremental,
			HoverProvider:    true,
			CompletionProvider: &lsp.CompletionOptions{
				TriggerCharacters: []string{"@"},
			},
			SelectionRangeProvider:  true,
			DefinitionProvider:      true,
			ReferencesProvider:      true,
			DocumentSymbolProvider:  true,
			WorkspaceSymbolProvider: true,
			CodeActionProvider:      true,
			ExecuteCommandProvider: &lsp.ExecuteCommandOptions{
				Commands: []string{
					CommandExplain,
					CommandImprove,
					CommandFix,
					CommandAtMention,
				},
			},
		},
		ServerInfo: &lsp.ServerInfo{Name: serverName, Version: serverVersion},
	}

	s.state = stateInitialized
	s.reply(id, result, nil)
}

func (s *Server) onInitialized() {
	slog.Info("language server initialized")
	s.notifyClient("window/logMessage", lsp.MessageParams{
		Type:    lsp.MessageInfo,
		Message: serverName + " is ready!",
	})
}

func (s *Server) onShutdown(id json.RawMessage) {
	slog.Info("language server shutting down")
	s.state = stateShuttingDown
	s.reply(id, nil, nil)
}

func (s *Server) onDidOpen(raw json.RawMessage) {
	var params lsp.DidOpenParams
	if err := json.Unmarshal(raw, &params); err != nil {
		slog.Warn("malformed didOpen params", "error", err)
		return
	}
	slog.Info("document opened", "uri", params.TextDocument.URI)
}

// logDocumentEvent covers didChange/didSave/didClose; the bridge does not
// index document content.
func (s *Server) logDocumentEvent(event string, raw json.RawMessage) {
	var params lsp.DocumentParams
	if err := json.Unmarshal(raw, &params); err != nil {
		slog.Warn("malformed document params", "event", event, "error", err)
		return
	}
	slog.Info(event, "uri", params.TextDocument.URI)
}

func (s *Server) onHover(id json.RawMessage, raw json.RawMessage) {
	var params lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &params); err == nil {
		slog.Debug("hover requested",
			"line", params.Position.Line, "character", params.Position.Character)
	}

	// No hover content; the assistant backend owns explanations.
	s.reply(id, nil, nil)
}

func (s *Server) onCompletion(id json.RawMessage, raw json.RawMessage) {
	var params lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &params); err == nil {
		slog.Debug("completion requested",
			"line", params.Position.Line, "character", params.Position.Character)
	}

	// A fixed set of assistant invocation snippets, independent of cursor
	// context.
	items := []lsp.CompletionItem{
		{
			Label:         "@claude explain",
			Kind:          lsp.CompletionKindText,
			Detail:        "Explain this code with Claude",
			Documentation: "Ask Claude to explain the selected code or current context",
			InsertText:    "@claude explain",
		},
		{
			Label:         "@claude improve",
			Kind:          lsp.CompletionKindText,
			Detail:        "Improve this code with Claude",
			Documentation: "Ask Claude to suggest improvements for the selected code",
			InsertText:    "@claude improve",
		},
		{
			Label:         "@claude fix",
			Kind:          lsp.CompletionKindText,
			Detail:        "Fix issues in this code with Claude",
			Documentation: "Ask Claude to identify and fix issues in the selected code",
			InsertText:    "@claude fix",
		},
	}

	s.reply(id, items, nil)
}

func (s *Server) onCodeAction(id json.RawMessage, raw json.RawMessage) {
	var params lsp.CodeActionParams
	if err := json.Unmarshal(raw, &params); err != nil {
		slog.Warn("malformed codeAction params", "error", err)
		s.reply(id, []lsp.CodeAction{}, nil)
		return
	}

	// A code action request reveals what the user has selected; feed it to
	// the debounced selection stream.
	s.offerSelection(params.TextDocument.URI, params.Range, params.Range.IsEmpty())

	actions := []lsp.CodeAction{
		{
			Title: "Explain with Claude",
			Kind:  lsp.CodeActionKindRefactor,
			Data: map[string]any{
				"action": "explain",
				"uri":    params.TextDocument.URI,
				"range":  params.Range,
			},
		},
	}
	s.reply(id, actions, nil)
}

func (s *Server) onSelectionRange(id json.RawMessage, raw json.RawMessage) {
	var params lsp.SelectionRangeParams
	if err := json.Unmarshal(raw, &params); err != nil {
		slog.Warn("malformed selectionRange params", "error", err)
		s.reply(id, []lsp.SelectionRange{}, nil)
		return
	}

	slog.Debug("selection range requested", "positions", len(params.Positions))

	result := make([]lsp.SelectionRange, 0, len(params.Positions))
	for _, pos := range params.Positions {
		r := lsp.Range{
			Start: pos,
			End:   lsp.Position{Line: pos.Line, Character: pos.Character + 1},
		}
		result = append(result, lsp.SelectionRange{Range: r})

		// Each cursor position counts as a one-character selection candidate;
		// the debouncer collapses the burst to the final one.
		s.offerSelection(params.TextDocument.URI, r, true)
	}

	s.reply(id, result, nil)
}

func (s *Server) onExecuteCommand(id json.RawMessage, raw json.RawMessage) {
	var params lsp.ExecuteCommandParams
	if err := json.Unmarshal(raw, &params); err != nil {
		slog.Warn("malformed executeCommand params", "error", err)
		s.reply(id, nil, nil)
		return
	}

	slog.Info("execute command", "command", params.Command)

	switch params.Command {
	case CommandExplain:
		s.showMessage(lsp.MessageInfo, "CodeBridge: Explain command executed (not yet implemented)")
	case CommandImprove:
		s.showMessage(lsp.MessageInfo, "CodeBridge: Improve command executed (not yet implemented)")
	case CommandFix:
		s.showMessage(lsp.MessageInfo, "CodeBridge: Fix command executed (not yet implemented)")
	case CommandAtMention:
		s.onAtMention(params.Arguments)
	default:
		s.showMessage(lsp.MessageWarning, "Unknown command: "+params.Command)
	}

	s.reply(id, nil, nil)
}

// onAtMention publishes an at_mentioned envelope straight to the fan-out.
// Mentions are deliberate one-shot actions, so they bypass the debouncer.
func (s *Server) onAtMention(args []json.RawMessage) {
	if len(args) == 0 {
		slog.Warn("at-mention command without arguments")
		return
	}

	var mention notify.Mention
	if err := json.Unmarshal(args[0], &mention); err != nil {
		slog.Warn("malformed at-mention argument", "error", err)
		return
	}

	s.publisher.Publish(notify.NewEnvelope(notify.MethodAtMentioned, mention))
	s.showMessage(lsp.MessageInfo, fmt.Sprintf("At-mention sent for %s:%d-%d",
		mention.FilePath, mention.LineStart, mention.LineEnd))
}

// offerSelection reads the range's text and hands a candidate to the
// debounced selection stream.
func (s *Server) offerSelection(uri string, r lsp.Range, isEmpty bool) {
	text := s.ranges.Text(uri, r)
	s.selection.Offer(&notify.Selection{
		Text:     text,
		FilePath: uriToPath(uri),
		FileURL:  uri,
		Selection: notify.SelectionSpan{
			Start:   r.Start,
			End:     r.End,
			IsEmpty: isEmpty,
		},
	})
}

// uriToPath strips a file:// scheme; other forms pass through unchanged.
func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
