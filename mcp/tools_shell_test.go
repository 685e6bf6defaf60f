package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestHandleAdbShell_Success(t *testing.T) {
	mock := NewMockDeskApp()
	mock.RunAdbCommandResult = "Pixel 6"
	server := NewMCPServer(mock)

	result, err := server.handleAdbShell(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id": "device1",
		"command":   "shell getprop ro.product.model",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := getTextContent(result)
	if !strings.Contains(text, "Command: adb -s device1 shell getprop ro.product.model") {
		t.Errorf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "Output:\nPixel 6") {
		t.Errorf("missing output: %q", text)
	}
}

func TestHandleAdbShell_NoOutput(t *testing.T) {
	server := NewMCPServer(NewMockDeskApp())

	result, err := server.handleAdbShell(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id": "device1",
		"command":   "input keyevent 3",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(getTextContent(result), "no output") {
		t.Errorf("got %q", getTextContent(result))
	}
}

func TestHandleAdbShell_FailureIsToolError(t *testing.T) {
	mock := NewMockDeskApp()
	mock.RunAdbCommandError = fmt.Errorf("/system/bin/sh: foo: not found")
	server := NewMCPServer(mock)

	result, err := server.handleAdbShell(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id": "device1",
		"command":   "foo",
	}))
	if err != nil {
		t.Fatalf("shell failures are reported in the result, got %v", err)
	}
	if !result.IsError {
		t.Error("IsError should be set")
	}
	if !strings.Contains(getTextContent(result), "not found") {
		t.Errorf("got %q", getTextContent(result))
	}
}

func TestHandleLogcatRead(t *testing.T) {
	mock := NewMockDeskApp()
	for i := 0; i < 5; i++ {
		mock.GetLogEntriesResult = append(mock.GetLogEntriesResult, LogEntry{
			Raw:   fmt.Sprintf("05-01 10:00:0%d  100  100 E Tag: line %d", i, i),
			Level: "E",
		})
	}
	server := NewMCPServer(mock)

	result, err := server.handleLogcatRead(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id": "device1",
		"level":     "W",
		"filter":    "tag",
		"limit":     float64(2),
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := getTextContent(result)
	if strings.Contains(text, "line 2") || !strings.Contains(text, "line 3") || !strings.Contains(text, "line 4") {
		t.Errorf("limit should keep the newest entries, got:\n%s", text)
	}
	call := mock.GetLastCallByMethod("GetLogEntries")
	if call == nil || call.Args[1] != "W" || call.Args[2] != "tag" {
		t.Errorf("GetLogEntries called with %+v", call)
	}
}

func TestHandleLogcatRead_Empty(t *testing.T) {
	server := NewMCPServer(NewMockDeskApp())

	result, err := server.handleLogcatRead(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id": "device1",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if getTextContent(result) != "No matching log entries" {
		t.Errorf("got %q", getTextContent(result))
	}
}
