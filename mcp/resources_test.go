package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// Helper to create a ReadResourceRequest
func makeResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// Helper to get text from resource contents
func getResourceText(contents []mcp.ResourceContents) string {
	if len(contents) == 0 {
		return ""
	}
	if tc, ok := contents[0].(mcp.TextResourceContents); ok {
		return tc.Text
	}
	return ""
}

// ==================== adbdesk://devices ====================

func TestHandleDevicesResource_Success(t *testing.T) {
	mock := NewMockDeskApp()
	mock.SetupWithDevices(SampleDevice("device1"), SampleDevice("device2"))
	server := NewMCPServer(mock)

	contents, err := server.handleDevicesResource(context.Background(), makeResourceRequest("adbdesk://devices"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var devices []map[string]interface{}
	if err := json.Unmarshal([]byte(getResourceText(contents)), &devices); err != nil {
		t.Fatalf("Result should be valid JSON: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devices))
	}
	// embedded device fields are flattened
	if devices[0]["serial"] != "device1" || devices[0]["model"] != "Pixel_6" {
		t.Errorf("unexpected device JSON: %v", devices[0])
	}
	if _, ok := devices[0]["isPinned"]; !ok {
		t.Error("isPinned should be present")
	}
}

func TestHandleDevicesResource_Error(t *testing.T) {
	mock := NewMockDeskApp()
	mock.GetDevicesError = ErrCommandFailed
	server := NewMCPServer(mock)

	if _, err := server.handleDevicesResource(context.Background(), makeResourceRequest("adbdesk://devices")); err == nil {
		t.Error("Expected error")
	}
}

// ==================== adbdesk://devices/{deviceId} ====================

func TestHandleDeviceInfoResource_Success(t *testing.T) {
	mock := NewMockDeskApp()
	mock.GetDeviceInfoResult = SampleDeviceProperties()
	server := NewMCPServer(mock)

	contents, err := server.handleDeviceInfoResource(context.Background(), makeResourceRequest("adbdesk://devices/emulator-5554"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	call := mock.GetLastCallByMethod("GetDeviceInfo")
	if call == nil || call.Args[0] != "emulator-5554" {
		t.Errorf("GetDeviceInfo called with %+v", call)
	}
	if !strings.Contains(getResourceText(contents), `"android_version": "14"`) {
		t.Errorf("unexpected JSON: %s", getResourceText(contents))
	}
}

func TestHandleDeviceInfoResource_InvalidURI(t *testing.T) {
	server := NewMCPServer(NewMockDeskApp())

	for _, uri := range []string{"adbdesk://devices/", "adbdesk://other/x", "adbdesk://devices/a/b"} {
		if _, err := server.handleDeviceInfoResource(context.Background(), makeResourceRequest(uri)); err == nil {
			t.Errorf("%s: expected error", uri)
		}
	}
}

// ==================== known devices / mirror sessions ====================

func TestHandleMirrorSessionsResource(t *testing.T) {
	mock := NewMockDeskApp()
	mock.MirrorSessions = []MirrorSession{SampleMirrorSession("device1")}
	server := NewMCPServer(mock)

	contents, err := server.handleMirrorSessionsResource(context.Background(), makeResourceRequest("adbdesk://mirror/sessions"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var sessions []MirrorSession
	if err := json.Unmarshal([]byte(getResourceText(contents)), &sessions); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Serial != "device1" || sessions[0].PID != 4242 {
		t.Errorf("unexpected sessions: %+v", sessions)
	}
}

func TestHandleKnownDevicesResource_Empty(t *testing.T) {
	mock := NewMockDeskApp()
	mock.GetKnownDevicesResult = []KnownDevice{}
	server := NewMCPServer(mock)

	contents, err := server.handleKnownDevicesResource(context.Background(), makeResourceRequest("adbdesk://known-devices"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := getResourceText(contents); got != "[]" {
		t.Errorf("got %q, want []", got)
	}
}
