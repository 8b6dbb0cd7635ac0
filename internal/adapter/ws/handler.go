// Package ws streams editor notifications to WebSocket clients.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/Strob0t/CodeBridge/internal/port/broadcast"
)

// conn wraps a single WebSocket connection and its notification feed.
type conn struct {
	ws     *websocket.Conn
	sub    *broadcast.Subscription
	cancel context.CancelFunc
}

// Hub upgrades HTTP requests to WebSocket connections and forwards every
// published notification envelope to each connected client. Each client
// has its own buffered subscription, so a slow client drops messages
// instead of stalling the others.
type Hub struct {
	stream broadcast.Stream

	mu    sync.RWMutex
	conns map[*conn]struct{}
}

// NewHub creates a hub fed by the given notification stream.
func NewHub(stream broadcast.Stream) *Hub {
	return &Hub{
		stream: stream,
		conns:  make(map[*conn]struct{}),
	}
}

// HandleWS upgrades the request and serves the connection until the
// client disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	c := &conn{ws: ws, sub: h.stream.Subscribe(0), cancel: cancel}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	slog.Info("websocket connected", "remote", r.RemoteAddr)

	defer func() {
		h.remove(c)
		_ = ws.Close(websocket.StatusNormalClosure, "")
	}()

	// Write loop: forward notification envelopes to the client.
	go func() {
		for env := range c.sub.C {
			data, err := json.Marshal(env)
			if err != nil {
				slog.Error("websocket marshal failed", "error", err)
				continue
			}
			if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
				slog.Debug("websocket write failed", "error", err)
				cancel()
				return
			}
		}
	}()

	// Read loop: detect disconnects and consume pings.
	for {
		if _, _, err := ws.Read(ctx); err != nil {
			return
		}
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		c.cancel()
		h.stream.Unsubscribe(c.sub.ID)
		delete(h.conns, c)
		slog.Info("websocket disconnected")
	}
}
