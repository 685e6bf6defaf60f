package mcp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
)

// file_read output is cut after this many bytes
const maxReadBytes = 64 * 1024

// registerFileTools registers device file system tools
func (s *MCPServer) registerFileTools() {
	s.server.AddTool(
		mcp.NewTool("file_list",
			mcp.WithDescription("List a directory on the device. Hidden entries follow the showHiddenFiles preference."),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("path", mcp.Description("Absolute directory path, defaults to /")),
		),
		s.handleFileList,
	)

	s.server.AddTool(
		mcp.NewTool("file_read",
			mcp.WithDescription("Read a device file as text (first 64 KiB)"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Absolute file path")),
		),
		s.handleFileRead,
	)

	s.server.AddTool(
		mcp.NewTool("file_pull",
			mcp.WithDescription("Copy a device file to the host"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("remote_path", mcp.Required(), mcp.Description("Path on the device")),
			mcp.WithString("local_path", mcp.Required(), mcp.Description("Destination path on the host")),
		),
		s.handleFilePull,
	)

	s.server.AddTool(
		mcp.NewTool("file_push",
			mcp.WithDescription("Copy a host file to the device"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("local_path", mcp.Required(), mcp.Description("Source path on the host")),
			mcp.WithString("remote_path", mcp.Required(), mcp.Description("Destination path on the device")),
		),
		s.handleFilePush,
	)

	s.server.AddTool(
		mcp.NewTool("file_move",
			mcp.WithDescription("Move or rename a file or directory on the device"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("src", mcp.Required(), mcp.Description("Source path")),
			mcp.WithString("dest", mcp.Required(), mcp.Description("Destination path")),
		),
		s.handleFileMove,
	)

	s.server.AddTool(
		mcp.NewTool("file_mkdir",
			mcp.WithDescription("Create a directory (and parents) on the device"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Directory path")),
		),
		s.handleFileMkdir,
	)

	s.server.AddTool(
		mcp.NewTool("file_delete",
			mcp.WithDescription("Recursively delete a file or directory on the device (requires confirmation)"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to delete")),
		),
		s.handleFileDelete,
	)
}

func (s *MCPServer) handleFileList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	dir := optionalString(args, "path")
	if dir == "" {
		dir = "/"
	}

	entries, err := s.app.ListFiles(deviceID, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d entries)\n", dir, len(entries))
	for _, e := range entries {
		size := "-"
		if e.Size != nil {
			size = fmt.Sprintf("%d", *e.Size)
		}
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		fmt.Fprintf(&b, "%s %10s %s\n", e.Permissions, size, name)
	}
	return textResult(b.String()), nil
}

func (s *MCPServer) handleFileRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	p, err := requireString(args, "path")
	if err != nil {
		return nil, err
	}

	text, err := s.app.ReadDeviceFile(deviceID, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(text) > maxReadBytes {
		text = truncateUTF8(text, maxReadBytes) + fmt.Sprintf("\n... [truncated, %d bytes total]", len(text))
	}
	return textResult(text), nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a character.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (s *MCPServer) handleFilePull(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	remote, err := requireString(args, "remote_path")
	if err != nil {
		return nil, err
	}
	local, err := requireString(args, "local_path")
	if err != nil {
		return nil, err
	}

	result, err := s.app.PullFile(deviceID, remote, local)
	if err != nil {
		return nil, fmt.Errorf("failed to pull: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleFilePush(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	local, err := requireString(args, "local_path")
	if err != nil {
		return nil, err
	}
	remote, err := requireString(args, "remote_path")
	if err != nil {
		return nil, err
	}

	result, err := s.app.PushFile(deviceID, local, remote)
	if err != nil {
		return nil, fmt.Errorf("failed to push: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleFileMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	src, err := requireString(args, "src")
	if err != nil {
		return nil, err
	}
	dest, err := requireString(args, "dest")
	if err != nil {
		return nil, err
	}

	result, err := s.app.MoveFile(deviceID, src, dest)
	if err != nil {
		return nil, fmt.Errorf("failed to move: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleFileMkdir(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	p, err := requireString(args, "path")
	if err != nil {
		return nil, err
	}

	result, err := s.app.CreateFolder(deviceID, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleFileDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	p, err := requireString(args, "path")
	if err != nil {
		return nil, err
	}

	confirmed, err := s.requestConfirmation(ctx, "Delete File",
		fmt.Sprintf("Device: %s\nPath: %s\n\nDirectories are removed recursively!", deviceID, p))
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return textResult("Delete cancelled by user"), nil
	}

	result, err := s.app.DeleteFile(deviceID, p)
	if err != nil {
		return nil, fmt.Errorf("failed to delete: %w", err)
	}
	return textResult(result), nil
}
