// Package mcp provides the MCP (Model Context Protocol) server for adbdesk.
// External AI clients drive the same device operations the desktop UI uses.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"adbdesk/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Type aliases from shared types package
type (
	Device           = types.DeviceView
	DeviceProperties = types.DeviceProperties
	KnownDevice      = types.KnownDevice
	FileEntry        = types.FileEntry
	PackageSummary   = types.PackageSummary
	PackageDetails   = types.PackageDetails
	LogEntry         = types.LogEntry
	MirrorSession    = types.MirrorSession
)

// DeskApp is the part of the application the MCP server drives.
type DeskApp interface {
	GetAppVersion() string

	// Device Management
	GetDevices() ([]Device, error)
	GetDeviceInfo(deviceId string) (DeviceProperties, error)
	AdbConnect(address string) (string, error)
	AdbPair(address string, code string) (string, error)
	RestartAdbServer() (string, error)
	GetKnownDevices() ([]KnownDevice, error)

	// Files
	ListFiles(deviceId, path string) ([]FileEntry, error)
	PullFile(deviceId, remotePath, localPath string) (string, error)
	PushFile(deviceId, localPath, remotePath string) (string, error)
	ReadDeviceFile(deviceId, path string) (string, error)
	DeleteFile(deviceId, path string) (string, error)
	MoveFile(deviceId, src, dest string) (string, error)
	CreateFolder(deviceId, path string) (string, error)

	// App Management
	ListPackages(deviceId string, includeSystem bool) ([]PackageSummary, error)
	GetAppInfo(deviceId, packageName string) (PackageDetails, error)
	StartApp(deviceId, packageName string) error
	ForceStopApp(deviceId, packageName string) error
	SetAppEnabled(deviceId, packageName string, enabled bool) error
	InstallAPK(deviceId string, path string) (string, error)
	UninstallApp(deviceId, packageName string) (string, error)
	ClearAppData(deviceId, packageName string) error

	// Diagnostics
	DiagnosticsSection(deviceId, section string) (interface{}, error)
	InjectTouch(deviceId string, x, y int) error
	SetBrightness(deviceId string, level int) error
	ToggleWifi(deviceId string, enable bool) error
	ToggleBluetooth(deviceId string, enable bool) error
	SimulateBatteryLevel(deviceId string, level int) error
	ResetBatterySimulation(deviceId string) error
	TriggerVibration(deviceId string, durationMs int) error

	// Shell & Logcat
	RunAdbCommand(deviceId string, command string) (string, error)
	GetLogEntries(deviceId, minLevel, filter string) ([]LogEntry, error)

	// Mirroring
	StartScrcpy(deviceId string) (string, error)
	StopScrcpy(deviceId string) error
	GetMirrorSessions() []MirrorSession
}

// MCPServer wraps the MCP server and exposes DeskApp as tools and resources
type MCPServer struct {
	app       DeskApp
	server    *server.MCPServer
	stdio     *server.StdioServer
	mu        sync.Mutex
	isRunning bool
}

// NewMCPServer creates a new MCP server for adbdesk
func NewMCPServer(app DeskApp) *MCPServer {
	mcpServer := server.NewMCPServer(
		"adbdesk",
		app.GetAppVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithElicitation(), // confirmation for destructive tools
		server.WithLogging(),
	)

	s := &MCPServer{
		app:    app,
		server: mcpServer,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// registerTools registers all MCP tools
func (s *MCPServer) registerTools() {
	s.registerDeviceTools()
	s.registerFileTools()
	s.registerAppTools()
	s.registerDiagnosticsTools()
	s.registerShellTools()
	s.registerMirrorTools()
}

// registerResources registers all MCP resources
func (s *MCPServer) registerResources() {
	s.server.AddResource(
		mcp.NewResource(
			"adbdesk://devices",
			"Connected Android devices",
			mcp.WithMIMEType("application/json"),
		),
		s.handleDevicesResource,
	)

	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"adbdesk://devices/{deviceId}",
			"Device properties",
		),
		s.handleDeviceInfoResource,
	)

	s.server.AddResource(
		mcp.NewResource(
			"adbdesk://known-devices",
			"Every device seen by the monitor",
			mcp.WithMIMEType("application/json"),
		),
		s.handleKnownDevicesResource,
	)

	s.server.AddResource(
		mcp.NewResource(
			"adbdesk://mirror/sessions",
			"Running scrcpy sessions",
			mcp.WithMIMEType("application/json"),
		),
		s.handleMirrorSessionsResource,
	)
}

// Start starts the MCP server (blocking - for CLI mode)
func (s *MCPServer) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("MCP server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	return s.run()
}

// StartAsync starts the MCP server in a goroutine (non-blocking)
func (s *MCPServer) StartAsync() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("MCP server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	go s.run()
	return nil
}

// run serves stdio until stdin closes or an interrupt arrives
func (s *MCPServer) run() error {
	s.stdio = server.NewStdioServer(s.server)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// stdout carries the protocol
	fmt.Fprintln(os.Stderr, "[MCP] adbdesk MCP server started")
	err := s.stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[MCP] Server error: %v\n", err)
	}

	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()

	return err
}

// Stop marks the server stopped; the stdio loop ends with stdin.
func (s *MCPServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isRunning = false
}

// IsRunning returns whether the MCP server is running
func (s *MCPServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// requestConfirmation asks the client to confirm a destructive operation
func (s *MCPServer) requestConfirmation(ctx context.Context, operation, details string) (bool, error) {
	elicitationRequest := mcp.ElicitationRequest{
		Params: mcp.ElicitationParams{
			Message: fmt.Sprintf("⚠️ Dangerous Operation: %s\n\nDetails: %s\n\nDo you want to proceed?", operation, details),
			RequestedSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"confirm": map[string]any{
						"type":        "boolean",
						"description": "Confirm to proceed with this operation",
					},
				},
				"required": []string{"confirm"},
			},
		},
	}

	result, err := s.server.RequestElicitation(ctx, elicitationRequest)
	if err != nil {
		return false, fmt.Errorf("failed to request confirmation: %w", err)
	}

	if result.Action != mcp.ElicitationResponseActionAccept {
		return false, nil
	}

	data, ok := result.Content.(map[string]any)
	if !ok {
		return false, fmt.Errorf("unexpected response format")
	}

	confirm, ok := data["confirm"].(bool)
	if !ok {
		return false, fmt.Errorf("invalid confirmation response")
	}

	return confirm, nil
}

// ==================== argument helpers ====================

func requireString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func optionalString(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// JSON numbers arrive as float64
func requireInt(args map[string]interface{}, key string) (int, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return int(v), nil
}

func requireBool(args map[string]interface{}, key string) (bool, error) {
	v, ok := args[key].(bool)
	if !ok {
		return false, fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
