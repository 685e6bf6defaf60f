package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerDeviceTools registers device management tools
func (s *MCPServer) registerDeviceTools() {
	// device_list - List connected devices
	s.server.AddTool(
		mcp.NewTool("device_list",
			mcp.WithDescription("List all Android devices known to the adb server, pinned first"),
		),
		s.handleDeviceList,
	)

	// device_info - Get device properties
	s.server.AddTool(
		mcp.NewTool("device_info",
			mcp.WithDescription("Get build, hardware, battery, storage and memory properties of a device"),
			mcp.WithString("device_id",
				mcp.Required(),
				mcp.Description("Device serial"),
			),
		),
		s.handleDeviceInfo,
	)

	// device_connect - Connect to a wireless device
	s.server.AddTool(
		mcp.NewTool("device_connect",
			mcp.WithDescription("Connect to a device via ADB over network (IP:port)"),
			mcp.WithString("address",
				mcp.Required(),
				mcp.Description("Device address in format IP:port (e.g., 192.168.1.100:5555)"),
			),
		),
		s.handleDeviceConnect,
	)

	// device_pair - Pair with a device
	s.server.AddTool(
		mcp.NewTool("device_pair",
			mcp.WithDescription("Pair with a device using wireless debugging"),
			mcp.WithString("address",
				mcp.Required(),
				mcp.Description("Device pairing address (IP:port)"),
			),
			mcp.WithString("code",
				mcp.Required(),
				mcp.Description("6-digit pairing code from device"),
			),
		),
		s.handleDevicePair,
	)

	// adb_restart - Restart the adb server
	s.server.AddTool(
		mcp.NewTool("adb_restart",
			mcp.WithDescription("Restart the adb server. Running mirror sessions are stopped first."),
		),
		s.handleAdbRestart,
	)

	// known_devices - Devices seen before
	s.server.AddTool(
		mcp.NewTool("known_devices",
			mcp.WithDescription("List every device seen while the device monitor was running, with first and last seen times"),
		),
		s.handleKnownDevices,
	)
}

func (s *MCPServer) handleDeviceList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.app.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	if len(devices) == 0 {
		return textResult("No devices connected"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d device(s):\n\n", len(devices))
	for i, d := range devices {
		name := deref(d.Model)
		if d.Label != "" {
			name = d.Label
		}
		pin := ""
		if d.IsPinned {
			pin = " [pinned]"
		}
		fmt.Fprintf(&b, "%d. %s%s\n   Name: %s, Product: %s, State: %s\n",
			i+1, d.Serial, pin, name, deref(d.Product), d.State)
	}

	// Also include JSON for structured access
	jsonData, _ := json.MarshalIndent(devices, "", "  ")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(b.String()),
			mcp.NewTextContent(fmt.Sprintf("\nJSON data:\n```json\n%s\n```", string(jsonData))),
		},
	}, nil
}

func (s *MCPServer) handleDeviceInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requireString(request.GetArguments(), "device_id")
	if err != nil {
		return nil, err
	}

	info, err := s.app.GetDeviceInfo(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get device info: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Device: %s\n\n", deviceID)
	rows := []struct {
		label string
		value *string
	}{
		{"Manufacturer", info.Manufacturer},
		{"Brand", info.Brand},
		{"Model", info.Model},
		{"Android Version", info.AndroidVersion},
		{"SDK Level", info.SDKVersion},
		{"Security Patch", info.SecurityPatch},
		{"ABI", info.CPUABI},
		{"Resolution", info.ScreenResolution},
		{"Density", info.ScreenDensity},
		{"Battery", info.BatteryLevel},
		{"Battery Status", info.BatteryStatus},
		{"Storage", info.InternalStorage},
		{"Available Storage", info.AvailableStorage},
		{"RAM", info.TotalRAM},
		{"Available RAM", info.AvailableRAM},
	}
	for _, r := range rows {
		if r.value != nil {
			fmt.Fprintf(&b, "%s: %s\n", r.label, *r.value)
		}
	}

	return textResult(b.String()), nil
}

func (s *MCPServer) handleDeviceConnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := requireString(request.GetArguments(), "address")
	if err != nil {
		return nil, err
	}

	result, err := s.app.AdbConnect(address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleDevicePair(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	address, err := requireString(args, "address")
	if err != nil {
		return nil, err
	}
	code, ok := args["code"].(string)
	if !ok || code == "" {
		return nil, fmt.Errorf("pairing code is required")
	}

	result, err := s.app.AdbPair(address, code)
	if err != nil {
		return nil, fmt.Errorf("failed to pair: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleAdbRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.app.RestartAdbServer()
	if err != nil {
		return nil, fmt.Errorf("failed to restart adb server: %w", err)
	}
	return textResult(result), nil
}

func (s *MCPServer) handleKnownDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	known, err := s.app.GetKnownDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to get known devices: %w", err)
	}
	if len(known) == 0 {
		return textResult("No devices recorded yet"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d known device(s):\n", len(known))
	for _, k := range known {
		fmt.Fprintf(&b, "- %s (%s) last seen %s\n", k.Serial, k.Model, k.LastSeen.Format("2006-01-02 15:04:05"))
	}
	return textResult(b.String()), nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
