package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func jsonResource(uri string, v interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleDevicesResource handles the adbdesk://devices resource
func (s *MCPServer) handleDevicesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	devices, err := s.app.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}
	return jsonResource(request.Params.URI, devices)
}

// handleDeviceInfoResource handles the adbdesk://devices/{deviceId} resource template
func (s *MCPServer) handleDeviceInfoResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	deviceID := strings.TrimPrefix(uri, "adbdesk://devices/")
	if deviceID == "" || deviceID == uri || strings.Contains(deviceID, "/") {
		return nil, fmt.Errorf("invalid URI format: %s", uri)
	}

	info, err := s.app.GetDeviceInfo(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get device info: %w", err)
	}
	return jsonResource(uri, info)
}

// handleKnownDevicesResource handles the adbdesk://known-devices resource
func (s *MCPServer) handleKnownDevicesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	known, err := s.app.GetKnownDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to get known devices: %w", err)
	}
	return jsonResource(request.Params.URI, known)
}

// handleMirrorSessionsResource handles the adbdesk://mirror/sessions resource
func (s *MCPServer) handleMirrorSessionsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(request.Params.URI, s.app.GetMirrorSessions())
}
