package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerMirrorTools registers scrcpy screen mirroring tools
func (s *MCPServer) registerMirrorTools() {
	s.server.AddTool(
		mcp.NewTool("mirror_start",
			mcp.WithDescription("Open a scrcpy window mirroring the device screen on the host"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
		),
		s.handleMirrorStart,
	)

	s.server.AddTool(
		mcp.NewTool("mirror_stop",
			mcp.WithDescription("Close every scrcpy window of the device"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
		),
		s.handleMirrorStop,
	)

	s.server.AddTool(
		mcp.NewTool("mirror_sessions",
			mcp.WithDescription("List running scrcpy sessions"),
		),
		s.handleMirrorSessions,
	)
}

func (s *MCPServer) handleMirrorStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requireString(request.GetArguments(), "device_id")
	if err != nil {
		return nil, err
	}

	result, err := s.app.StartScrcpy(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to start mirroring: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleMirrorStop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requireString(request.GetArguments(), "device_id")
	if err != nil {
		return nil, err
	}

	if err := s.app.StopScrcpy(deviceID); err != nil {
		return nil, fmt.Errorf("failed to stop mirroring: %w", err)
	}
	return textResult(fmt.Sprintf("Mirroring stopped for %s", deviceID)), nil
}

func (s *MCPServer) handleMirrorSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions := s.app.GetMirrorSessions()
	if len(sessions) == 0 {
		return textResult("No mirroring sessions running"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d session(s):\n", len(sessions))
	for _, sess := range sessions {
		fmt.Fprintf(&b, "- %s on %s (pid %d, running %s)\n",
			sess.ID, sess.Serial, sess.PID, time.Since(sess.StartedAt).Truncate(time.Second))
	}
	return textResult(b.String()), nil
}
