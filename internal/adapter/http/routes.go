package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// FeedStats reports the state of the notification fan-out for the
// health endpoint.
type FeedStats interface {
	SubscriberCount() int
}

// Services are the collaborators the HTTP surface exposes.
type Services struct {
	WS   http.HandlerFunc
	MCP  http.Handler
	Feed FeedStats
}

// MountRoutes registers all routes on the given chi router.
func MountRoutes(r chi.Router, s Services) {
	r.Get("/health", handleHealth(s.Feed))
	if s.WS != nil {
		r.Get("/ws", s.WS)
	}
	if s.MCP != nil {
		r.Mount("/mcp", s.MCP)
	}
}

func handleHealth(feed FeedStats) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		status := map[string]any{"status": "ok"}
		if feed != nil {
			status["subscribers"] = feed.SubscriberCount()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			slog.Debug("health encode failed", "error", err)
		}
	}
}
