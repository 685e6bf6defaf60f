package main

import (
	"testing"

	"adbdesk/pkg/types"
)

func TestMCPBridge_SetAppEnabled(t *testing.T) {
	r := newScriptRunner().
		stdout("-s dev1 shell pm enable com.example.app", "Package com.example.app new state: enabled\n").
		stdout("-s dev1 shell pm disable-user --user 0 com.example.app", "Package com.example.app new state: disabled-user\n")
	bridge := NewMCPBridge(newTestApp(t, r))

	if err := bridge.SetAppEnabled("dev1", "com.example.app", true); err != nil {
		t.Errorf("enable: %v", err)
	}
	if err := bridge.SetAppEnabled("dev1", "com.example.app", false); err != nil {
		t.Errorf("disable: %v", err)
	}
	if !r.called("-s dev1 shell pm enable com.example.app") {
		t.Error("pm enable not run")
	}
	if !r.called("-s dev1 shell pm disable-user --user 0 com.example.app") {
		t.Error("pm disable-user not run")
	}
}

func TestMCPBridge_DiagnosticsSection(t *testing.T) {
	r := newScriptRunner().stdout("-s dev1 shell dumpsys battery", "  level: 77\n  status: 2\n")
	bridge := NewMCPBridge(newTestApp(t, r))

	v, err := bridge.DiagnosticsSection("dev1", "battery")
	if err != nil {
		t.Fatalf("DiagnosticsSection: %v", err)
	}
	b, ok := v.(types.BatteryState)
	if !ok || b.Level == nil || *b.Level != 77 {
		t.Errorf("unexpected result: %#v", v)
	}
}

func TestMCPBridge_Version(t *testing.T) {
	bridge := NewMCPBridge(newTestApp(t, newScriptRunner()))
	if bridge.GetAppVersion() != "1.0.0-test" {
		t.Errorf("version = %q", bridge.GetAppVersion())
	}
	if len(bridge.GetMirrorSessions()) != 0 {
		t.Error("no sessions expected")
	}
}
