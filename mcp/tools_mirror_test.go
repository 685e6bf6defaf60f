package mcp

import (
	"context"
	"strings"
	"testing"
)

func TestHandleMirrorStart(t *testing.T) {
	mock := NewMockDeskApp()
	mock.StartScrcpyResult = "Mirroring started"
	server := NewMCPServer(mock)

	result, err := server.handleMirrorStart(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id": "device1",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if getTextContent(result) != "Mirroring started" {
		t.Errorf("got %q", getTextContent(result))
	}
}

func TestHandleMirrorStop_Error(t *testing.T) {
	mock := NewMockDeskApp()
	mock.StopScrcpyError = ErrDeviceNotFound
	server := NewMCPServer(mock)

	_, err := server.handleMirrorStop(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id": "device1",
	}))
	if err == nil || !strings.Contains(err.Error(), "failed to stop mirroring") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestHandleMirrorSessions(t *testing.T) {
	mock := NewMockDeskApp()
	server := NewMCPServer(mock)

	result, _ := server.handleMirrorSessions(context.Background(), makeToolRequest(nil))
	if getTextContent(result) != "No mirroring sessions running" {
		t.Errorf("got %q", getTextContent(result))
	}

	mock.MirrorSessions = []MirrorSession{SampleMirrorSession("device1")}
	result, _ = server.handleMirrorSessions(context.Background(), makeToolRequest(nil))
	text := getTextContent(result)
	if !strings.Contains(text, "sess-device1 on device1 (pid 4242") {
		t.Errorf("got %q", text)
	}
}
