// Package lsp defines domain types for the Language Server Protocol surface
// of the bridge. These types mirror the on-the-wire LSP shapes (positions,
// ranges, capabilities, command invocations) in a transport-independent way
// for use across the adapter and service layers.
package lsp

import "encoding/json"

// Position in a text document (0-based line and character).
// Character offsets count UTF-16 code units, per the LSP specification.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range in a text document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsEmpty reports whether the range selects no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Location links a URI to a range.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// TextDocumentIdentifier identifies a document by URI.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// TextDocumentItem is the full document sent on didOpen.
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// WorkspaceFolder as supplied in the initialize handshake.
type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// InitializeParams carries the client's half of the initialize handshake.
type InitializeParams struct {
	ProcessID        *int              `json:"processId,omitempty"`
	RootURI          string            `json:"rootUri,omitempty"`
	Capabilities     json.RawMessage   `json:"capabilities,omitempty"`
	WorkspaceFolders []WorkspaceFolder `json:"workspaceFolders,omitempty"`
}

// CompletionOptions advertises completion support.
type CompletionOptions struct {
	ResolveProvider   bool     `json:"resolveProvider"`
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// ExecuteCommandOptions advertises the commands the server handles.
type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}

// TextDocumentSyncKind values (LSP enum).
const (
	SyncNone        = 0
	SyncFull        = 1
	SyncIncremental = 2
)

// ServerCapabilities is the capability set returned from initialize.
type ServerCapabilities struct {
	TextDocumentSync        int                    `json:"textDocumentSync"`
	HoverProvider           bool                   `json:"hoverProvider"`
	CompletionProvider      *CompletionOptions     `json:"completionProvider,omitempty"`
	SelectionRangeProvider  bool                   `json:"selectionRangeProvider"`
	DefinitionProvider      bool                   `json:"definitionProvider"`
	ReferencesProvider      bool                   `json:"referencesProvider"`
	DocumentSymbolProvider  bool                   `json:"documentSymbolProvider"`
	WorkspaceSymbolProvider bool                   `json:"workspaceSymbolProvider"`
	CodeActionProvider      bool                   `json:"codeActionProvider"`
	ExecuteCommandProvider  *ExecuteCommandOptions `json:"executeCommandProvider,omitempty"`
}

// ServerInfo identifies the server in the initialize result.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult is the server's half of the initialize handshake.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// DidOpenParams for textDocument/didOpen.
type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// DocumentParams covers didChange/didSave/didClose, which the bridge only logs.
type DocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// TextDocumentPositionParams is the common document+position request payload.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// CompletionKindText is the LSP CompletionItemKind for plain text entries.
const CompletionKindText = 1

// CompletionItem is a single completion entry.
type CompletionItem struct {
	Label         string `json:"label"`
	Kind          int    `json:"kind,omitempty"`
	Detail        string `json:"detail,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	InsertText    string `json:"insertText,omitempty"`
}

// CodeActionParams for textDocument/codeAction.
type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

// CodeActionKindRefactor is the LSP "refactor" code action kind.
const CodeActionKindRefactor = "refactor"

// CodeAction returned from textDocument/codeAction.
type CodeAction struct {
	Title       string `json:"title"`
	Kind        string `json:"kind,omitempty"`
	IsPreferred bool   `json:"isPreferred"`
	Data        any    `json:"data,omitempty"`
}

// ExecuteCommandParams for workspace/executeCommand.
type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// SelectionRangeParams for textDocument/selectionRange.
type SelectionRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Positions    []Position             `json:"positions"`
}

// SelectionRange is one entry of the selectionRange response. Parent is
// always nil here; the bridge does not compute enclosing ranges.
type SelectionRange struct {
	Range  Range           `json:"range"`
	Parent *SelectionRange `json:"parent,omitempty"`
}

// MessageType values for window/showMessage and window/logMessage.
const (
	MessageError   = 1
	MessageWarning = 2
	MessageInfo    = 3
	MessageLog     = 4
)

// MessageParams is the payload of window/showMessage and window/logMessage.
type MessageParams struct {
	Type    int    `json:"type"`
	Message string `json:"message"`
}
