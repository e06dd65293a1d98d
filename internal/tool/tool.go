// Package tool exposes sandboxed shell execution as an MCP tool.
package tool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandshell/sandshell/internal/sandbox"
)

// maxResultLen caps the text handed back to the host runtime. Truncation
// happens here, after normalization, so the executor's sentinel contract
// stays intact for direct callers.
const maxResultLen = 16000

// Register adds the sandboxed_shell tool to an MCP server.
func Register(s *server.MCPServer, exec *sandbox.Executor) {
	s.AddTool(mcp.Tool{
		Name: "sandboxed_shell",
		Description: "Execute a shell command in a secure bubblewrap sandbox. " +
			"The entire host filesystem is visible read-only, there is no network access, " +
			"and writes only land in throwaway /tmp, /var and /run directories. " +
			"Useful for safely exploring the system, reading files, or running diagnostics. " +
			"Pipes and multi-command shell syntax are supported. " +
			"Output includes a [stderr]: section and an [Exit code: N] line when relevant.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"command": map[string]any{
					"type":        "string",
					"description": "The shell command to execute (e.g. \"ls -la\", \"cat /etc/hostname\", \"grep -r pattern /path\")",
				},
			},
			Required: []string{"command"},
		},
	}, Handler(exec))
}

// Handler returns the MCP handler backed by the given executor. Argument
// errors become IsError results; execution failures are already carried
// in-band in the executor's output text, so the handler itself never fails.
func Handler(exec *sandbox.Executor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		if args == nil {
			return errorResult("error: invalid arguments"), nil
		}

		command, ok := args["command"].(string)
		if !ok {
			return errorResult("error: 'command' argument must be a string"), nil
		}

		result := exec.Run(ctx, command)
		if len(result) > maxResultLen {
			result = result[:maxResultLen] + "\n... (output truncated)"
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.TextContent{Type: "text", Text: result}},
		}, nil
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: msg}},
		IsError: true,
	}
}
