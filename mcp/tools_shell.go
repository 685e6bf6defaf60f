package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// logcat_read returns at most this many entries unless limit says otherwise
const defaultLogcatLimit = 200

// registerShellTools registers shell passthrough and logcat tools
func (s *MCPServer) registerShellTools() {
	// adb_shell - Execute a shell command
	s.server.AddTool(
		mcp.NewTool("adb_shell",
			mcp.WithDescription("Run a shell command on the device (e.g., 'pm list packages' or 'getprop ro.product.model'). A leading 'shell ' is accepted. Calls are rate limited."),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("command", mcp.Required(), mcp.Description("Shell command line")),
		),
		s.handleAdbShell,
	)

	// logcat_read - Recent logcat entries
	s.server.AddTool(
		mcp.NewTool("logcat_read",
			mcp.WithDescription("Read recent logcat entries (threadtime format) at or above a level"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("level",
				mcp.Description("Minimum level; defaults to the defaultLogLevel preference"),
				mcp.Enum("V", "D", "I", "W", "E", "F"),
			),
			mcp.WithString("filter", mcp.Description("Case-insensitive substring to match")),
			mcp.WithNumber("limit", mcp.Description("Newest entries to return (default 200)")),
		),
		s.handleLogcatRead,
	)
}

func (s *MCPServer) handleAdbShell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	command, err := requireString(args, "command")
	if err != nil {
		return nil, err
	}

	output, err := s.app.RunAdbCommand(deviceID, command)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(fmt.Sprintf("Command failed: %v", err)),
			},
			IsError: true,
		}, nil
	}

	result := fmt.Sprintf("Command: adb -s %s shell %s\n\n", deviceID, strings.TrimPrefix(command, "shell "))
	if output == "" {
		result += "Command executed successfully (no output)"
	} else {
		result += fmt.Sprintf("Output:\n%s", output)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleLogcatRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	limit := defaultLogcatLimit
	if l, ok := args["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	entries, err := s.app.GetLogEntries(deviceID, optionalString(args, "level"), optionalString(args, "filter"))
	if err != nil {
		return nil, fmt.Errorf("failed to read logcat: %w", err)
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if len(entries) == 0 {
		return textResult("No matching log entries"), nil
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Raw)
		b.WriteByte('\n')
	}
	return textResult(b.String()), nil
}
