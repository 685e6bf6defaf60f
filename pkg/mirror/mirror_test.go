package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"adbdesk/pkg/adb"
)

type event struct {
	name string
	data []interface{}
}

func fakeScrcpy(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a unix shell")
	}
	path := filepath.Join(t.TempDir(), "scrcpy")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write fake scrcpy: %v", err)
	}
	return path
}

func newTestManager(path string) (*Manager, chan event) {
	events := make(chan event, 4)
	m := NewManager(func() string { return path }, EmitterFunc(func(name string, data ...interface{}) {
		events <- event{name, data}
	}), zerolog.Nop())
	return m, events
}

func waitEvent(t *testing.T, events chan event) event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for session end event")
		return event{}
	}
}

func TestStartEmitsOnExit(t *testing.T) {
	m, events := newTestManager(fakeScrcpy(t, "exit 0"))

	msg, err := m.Start("emulator-5554")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !strings.HasPrefix(msg, "Mirroring Active (PID: ") {
		t.Errorf("Unexpected start message %q", msg)
	}

	ev := waitEvent(t, events)
	if ev.name != EventSessionEnded {
		t.Errorf("event = %q, want %q", ev.name, EventSessionEnded)
	}
	var pid int
	if _, err := fmt.Sscanf(msg, "Mirroring Active (PID: %d)", &pid); err != nil {
		t.Fatalf("parse pid: %v", err)
	}
	want := fmt.Sprintf("Session ended (PID: %d)", pid)
	if len(ev.data) != 1 || ev.data[0] != want {
		t.Errorf("event data = %v, want %q", ev.data, want)
	}
}

func TestStartRunsInBinaryDir(t *testing.T) {
	path := fakeScrcpy(t, `pwd > cwd.txt`)
	m, events := newTestManager(path)
	if _, err := m.Start("emulator-5554"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitEvent(t, events)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "cwd.txt"))
	if err != nil {
		t.Fatalf("Expected script to write into its own directory: %v", err)
	}
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(string(data)))
	want, _ := filepath.EvalSymlinks(filepath.Dir(path))
	if got != want {
		t.Errorf("cwd = %q, want %q", got, want)
	}
}

func TestStopKillsSession(t *testing.T) {
	m, events := newTestManager(fakeScrcpy(t, "exec sleep 30"))

	if _, err := m.Start("emulator-5554"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if n := len(m.Sessions()); n != 1 {
		t.Fatalf("Expected 1 live session, got %d", n)
	}
	if got := m.Sessions()[0].ID; got == "" {
		t.Error("Expected a session id")
	}

	if err := m.Stop("emulator-5554"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	waitEvent(t, events)
	if n := len(m.Sessions()); n != 0 {
		t.Errorf("Expected no live sessions after stop, got %d", n)
	}
}

func TestStopUnknownDevice(t *testing.T) {
	m, _ := newTestManager("scrcpy")
	if err := m.Stop("nope"); err != ErrNoSession {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
}

func TestStartMissingBinary(t *testing.T) {
	m, _ := newTestManager(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := m.Start("emulator-5554"); err == nil || !strings.Contains(err.Error(), "failed to start scrcpy") {
		t.Errorf("Expected start error, got %v", err)
	}
}

func TestStartRejectsBadSerial(t *testing.T) {
	m, _ := newTestManager("scrcpy")
	if _, err := m.Start("a;b"); err == nil {
		t.Error("Expected invalid serial to be rejected")
	}
}

type scriptRunner map[string]adb.Result

func (s scriptRunner) Run(_ context.Context, name string, args ...string) (adb.Result, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if res, ok := s[key]; ok {
		return res, nil
	}
	return adb.Result{ExitCode: 127}, nil
}

func TestCheck(t *testing.T) {
	m, _ := newTestManager("scrcpy")
	m.Runner = scriptRunner{"scrcpy --version": {Stdout: []byte("scrcpy 2.4")}}
	if !m.Check(context.Background()) {
		t.Error("Expected scrcpy to be detected")
	}
	m.Runner = scriptRunner{}
	if m.Check(context.Background()) {
		t.Error("Expected scrcpy to be missing")
	}
}

func TestInstallPerPlatform(t *testing.T) {
	m, _ := newTestManager("scrcpy")
	ctx := context.Background()

	m.Runner = scriptRunner{"which brew": {}, "brew install scrcpy": {}}
	if msg, err := m.install(ctx, "darwin"); err != nil || msg != "scrcpy installed successfully" {
		t.Errorf("darwin install = (%q, %v)", msg, err)
	}

	m.Runner = scriptRunner{}
	if _, err := m.install(ctx, "darwin"); err == nil || !strings.Contains(err.Error(), "Homebrew not found") {
		t.Errorf("Expected missing brew error, got %v", err)
	}

	m.Runner = scriptRunner{"winget install Genymobile.Scrcpy": {ExitCode: 1}}
	if _, err := m.install(ctx, "windows"); err == nil || !strings.Contains(err.Error(), "Winget") {
		t.Errorf("Expected winget failure, got %v", err)
	}

	if _, err := m.install(ctx, "linux"); err == nil || !strings.Contains(err.Error(), "package manager") {
		t.Errorf("Expected linux guidance, got %v", err)
	}
}
