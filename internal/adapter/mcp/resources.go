package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// registerResources registers all MCP resources on the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcplib.NewResource(
			"codebridge://feed/stats",
			"Notification Feed Stats",
			mcplib.WithResourceDescription("State of the editor notification fan-out"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handleFeedStatsResource,
	)
}

func (s *Server) handleFeedStatsResource(_ context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	if s.deps.Feed == nil {
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     `{"error":"notification feed not configured"}`,
			},
		}, nil
	}

	data, err := json.Marshal(map[string]int{
		"subscriberCount": s.deps.Feed.SubscriberCount(),
	})
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
