package lsp

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/Strob0t/CodeBridge/internal/domain/lsp"
	"github.com/Strob0t/CodeBridge/internal/domain/notify"
	"github.com/Strob0t/CodeBridge/internal/port/broadcast"
)

// Server identity reported in the initialize result.
const (
	serverName    = "CodeBridge Language Server"
	serverVersion = "0.1.0"
)

// Executable commands advertised at initialize time.
const (
	CommandExplain   = "claude-code.explain"
	CommandImprove   = "claude-code.improve"
	CommandFix       = "claude-code.fix"
	CommandAtMention = "claude-code.at-mention"
)

// state is the protocol lifecycle of one editor connection.
type state int

const (
	stateUninitialized state = iota
	stateInitialized
	stateShuttingDown
	stateTerminated
)

// RangeReader resolves the text covered by a range in a file, degrading to
// an empty string on any failure.
type RangeReader interface {
	Text(filePath string, r lsp.Range) string
}

// SelectionSink accepts selection candidates for debounced emission.
type SelectionSink interface {
	Offer(sel *notify.Selection)
}

// Server answers editor protocol messages and feeds the notification
// pipeline. It owns no coalescing state; candidates go to the sink,
// mentions go straight to the publisher.
type Server struct {
	conn      *Conn
	ranges    RangeReader
	selection SelectionSink
	publisher broadcast.Publisher

	state state
}

// NewServer creates a protocol server over conn.
func NewServer(conn *Conn, ranges RangeReader, selection SelectionSink, publisher broadcast.Publisher) *Server {
	return &Server{
		conn:      conn,
		ranges:    ranges,
		selection: selection,
		publisher: publisher,
		state:     stateUninitialized,
	}
}

// Serve reads and handles messages until the transport closes or the editor
// sends exit. Handlers run on this goroutine, so responses keep arrival
// order.
func (s *Server) Serve() error {
	for {
		msg, err := s.conn.ReadMessage()
		if err != nil {
			s.state = stateTerminated
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				slog.Info("editor transport closed")
				return nil
			}
			return err
		}

		if msg.Method == "exit" {
			s.state = stateTerminated
			slog.Info("editor requested exit")
			return nil
		}

		if !s.accepting(msg) {
			continue
		}

		s.dispatch(msg)
	}
}

// accepting applies the lifecycle gate, answering rejected requests with a
// protocol error. Notifications outside the accepting state are dropped.
func (s *Server) accepting(msg *Message) bool {
	switch s.state {
	case stateUninitialized:
		if msg.Method == "initialize" {
			return true
		}
		if msg.IsRequest() {
			s.reply(msg.ID, nil, &ResponseError{Code: CodeNotInitialized, Message: "server not initialized"})
		}
		return false

	case stateShuttingDown:
		if msg.IsRequest() {
			s.reply(msg.ID, nil, &ResponseError{Code: CodeInvalidRequest, Message: "server is shutting down"})
		}
		return false

	default:
		return true
	}
}

func (s *Server) dispatch(msg *Message) {
	switch msg.Method {
	case "initialize":
		s.onInitialize(msg.ID, msg.Params)
	case "initialized":
		s.onInitialized()
	case "shutdown":
		s.onShutdown(msg.ID)

	case "textDocument/didOpen":
		s.onDidOpen(msg.Params)
	case "textDocument/didChange":
		s.logDocumentEvent("document changed", msg.Params)
	case "textDocument/didSave":
		s.logDocumentEvent("document saved", msg.Params)
	case "textDocument/didClose":
		s.logDocumentEvent("document closed", msg.Params)

	case "textDocument/hover":
		s.onHover(msg.ID, msg.Params)
	case "textDocument/completion":
		s.onCompletion(msg.ID, msg.Params)
	case "textDocument/codeAction":
		s.onCodeAction(msg.ID, msg.Params)
	case "textDocument/selectionRange":
		s.onSelectionRange(msg.ID, msg.Params)
	case "workspace/executeCommand":
		s.onExecuteCommand(msg.ID, msg.Params)

	default:
		if msg.IsRequest() {
			s.reply(msg.ID, nil, &ResponseError{Code: CodeMethodNotFound, Message: "method not found: " + msg.Method})
		} else {
			slog.Debug("notification ignored", "method", msg.Method)
		}
	}
}

// reply writes a response, logging instead of failing the serve loop when
// the transport is gone.
func (s *Server) reply(id json.RawMessage, result any, respErr *ResponseError) {
	var err error
	if respErr != nil {
		err = s.conn.ReplyError(id, respErr.Code, respErr.Message)
	} else {
		err = s.conn.Reply(id, result)
	}
	if err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// notifyClient sends a server-to-client notification, best effort.
func (s *Server) notifyClient(method string, params any) {
	if err := s.conn.Notify(method, params); err != nil {
		slog.Warn("failed to send client notification", "method", method, "error", err)
	}
}

// showMessage surfaces a message in the editor UI.
func (s *Server) showMessage(kind int, text string) {
	s.notifyClient("window/showMessage", lsp.MessageParams{Type: kind, Message: text})
}
