package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Strob0t/CodeBridge/internal/domain/command"
)

// registerTools registers all MCP tools on the server.
func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		s.openFileTool(),
	)
}

func (s *Server) openFileTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("open_file",
		mcplib.WithDescription("Open a file in the connected editor, optionally at a specific line and column"),
		mcplib.WithString("filePath",
			mcplib.Required(),
			mcplib.Description("Path of the file to open"),
		),
		mcplib.WithNumber("line",
			mcplib.Description("One-based line to place the cursor on"),
		),
		mcplib.WithNumber("column",
			mcplib.Description("One-based column to place the cursor on; ignored without a line"),
		),
		mcplib.WithBoolean("takeFocus",
			mcplib.Description("Whether the editor window should take focus"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.handleOpenFile,
	}
}

func (s *Server) handleOpenFile(_ context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Commands == nil {
		return mcplib.NewToolResultError("command queue not configured"), nil
	}

	args := req.GetArguments()
	filePath, ok := args["filePath"].(string)
	if !ok || filePath == "" {
		return mcplib.NewToolResultError("filePath is required"), nil
	}

	cmd := command.OpenFile{FilePath: filePath}
	if line, ok := args["line"].(float64); ok {
		l := uint32(line)
		cmd.Line = &l
	}
	if column, ok := args["column"].(float64); ok {
		c := uint32(column)
		cmd.Column = &c
	}
	if focus, ok := args["takeFocus"].(bool); ok {
		cmd.TakeFocus = focus
	}

	select {
	case s.deps.Commands <- cmd:
	default:
		return mcplib.NewToolResultError("command queue is full"), nil
	}

	data, err := json.Marshal(map[string]string{
		"status": "queued",
		"target": cmd.Target(),
	})
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal result", err), nil
	}
	return toolResultJSON(string(data)), nil
}

func toolResultJSON(data string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(data)
}
