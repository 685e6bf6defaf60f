package adb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"adbdesk/pkg/types"
)

const serial = "emulator-5554"

func newTestClient(r *fakeRunner) *Client {
	return New("/usr/bin/adb", r, 0)
}

func TestValidateDeviceID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"emulator-5554", false},
		{"192.168.1.5:5555", false},
		{"adb-28161FDH2001L7-abc._adb-tls-connect._tcp.", false},
		{"", true},
		{strings.Repeat("a", 257), true},
		{"abc;rm -rf /", true},
		{"abc def", true},
		{"$(reboot)", true},
	}
	for _, tt := range tests {
		err := ValidateDeviceID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDeviceID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}

func TestValidatePackageID(t *testing.T) {
	for _, ok := range []string{"com.foo", "android", "com.foo_bar.baz2"} {
		if err := ValidatePackageID(ok); err != nil {
			t.Errorf("ValidatePackageID(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "com.foo;reboot", "com..foo", ".com", "com foo"} {
		if err := ValidatePackageID(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestTimeoutDefaultsAndUpdates(t *testing.T) {
	c := New("adb", newFakeRunner(), 0)
	if c.Timeout() != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.Timeout(), DefaultTimeout)
	}
	c.SetTimeout(5 * time.Second)
	if c.Timeout() != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.Timeout())
	}
}

func TestRunAppliesDeadline(t *testing.T) {
	r := newFakeRunner().stdout("devices -l", "List of devices attached\n")
	c := New("adb", r, time.Minute)

	if _, err := c.Devices(context.Background()); err != nil {
		t.Fatalf("Devices failed: %v", err)
	}
	deadline, ok := r.lastCtx.Deadline()
	if !ok {
		t.Fatal("Expected runner context to carry a deadline")
	}
	if time.Until(deadline) > time.Minute {
		t.Errorf("Deadline too far in the future: %v", deadline)
	}
}

func TestNoAdbPath(t *testing.T) {
	c := New("", newFakeRunner(), 0)
	if _, err := c.Devices(context.Background()); !errors.Is(err, ErrNoAdb) {
		t.Errorf("Expected ErrNoAdb, got %v", err)
	}
}

func TestCommandErrorText(t *testing.T) {
	if got := (&CommandError{Output: "  error: device offline\n"}).Error(); got != "error: device offline" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&CommandError{}).Error(); got != "Command failed" {
		t.Errorf("Error() = %q, want generic message", got)
	}
}

func TestDevices(t *testing.T) {
	r := newFakeRunner().stdout("devices -l",
		"List of devices attached\nemulator-5554 device product:sdk model:Pixel_7 device:emu64 transport_id:1\n")
	got, err := newTestClient(r).Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices failed: %v", err)
	}
	if len(got) != 1 || got[0].Serial != serial || got[0].Model == nil || *got[0].Model != "Pixel_7" {
		t.Errorf("Unexpected devices %+v", got)
	}
}

func TestDevicesSpawnFailure(t *testing.T) {
	r := newFakeRunner()
	r.spawn["devices -l"] = errNotFound
	_, err := newTestClient(r).Devices(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), "failed to execute adb") {
		t.Fatalf("Expected wrapped spawn error, got %v", err)
	}
	if !errors.Is(err, errNotFound) {
		t.Error("Expected spawn error to be wrapped")
	}
	if IsCommandError(err) {
		t.Error("Spawn failure must not be a CommandError")
	}
}

func TestConnectFailure(t *testing.T) {
	r := newFakeRunner().fail("connect 10.0.0.1:5555", "cannot resolve host\n")
	_, err := newTestClient(r).Connect(context.Background(), "10.0.0.1:5555")
	if err == nil || err.Error() != "cannot resolve host" {
		t.Errorf("Expected stderr as error, got %v", err)
	}
	if !IsCommandError(err) {
		t.Error("Expected CommandError")
	}
}

func TestPair(t *testing.T) {
	r := newFakeRunner().stdout("pair 10.0.0.1:37000 123456", "Successfully paired to 10.0.0.1:37000\n")
	out, err := newTestClient(r).Pair(context.Background(), "10.0.0.1:37000", "123456")
	if err != nil || !strings.Contains(out, "Successfully paired") {
		t.Errorf("Pair = (%q, %v)", out, err)
	}
}

func TestRestartServerIgnoresKillStatus(t *testing.T) {
	r := newFakeRunner().
		fail("kill-server", "cannot connect to daemon").
		stdout("start-server", "")
	if err := newTestClient(r).RestartServer(context.Background()); err != nil {
		t.Fatalf("RestartServer failed: %v", err)
	}
	if !r.called("kill-server") || !r.called("start-server") {
		t.Errorf("Expected kill-server then start-server, got %v", r.calls)
	}
}

func TestQueryNormalizes(t *testing.T) {
	r := newFakeRunner().
		stdout("-s emulator-5554 shell getprop ro.product.model", "  Pixel 7\r\n").
		stdout("-s emulator-5554 shell getprop ro.bootloader", "unknown\n").
		fail("-s emulator-5554 shell getprop ro.secret", "permission denied")
	c := newTestClient(r)
	ctx := context.Background()

	if v, ok := c.Query(ctx, serial, "getprop ro.product.model"); !ok || v != "Pixel 7" {
		t.Errorf("Query(model) = (%q, %v)", v, ok)
	}
	if _, ok := c.Query(ctx, serial, "getprop ro.bootloader"); ok {
		t.Error("Expected sentinel output to be absent")
	}
	if _, ok := c.Query(ctx, serial, "getprop ro.secret"); ok {
		t.Error("Expected failed command to be absent")
	}
}

func TestActionErrorText(t *testing.T) {
	r := newFakeRunner().
		fail("-s emulator-5554 shell input tap 1 2", "").
		fail("-s emulator-5554 shell input tap 3 4", "  input: not permitted \n")
	c := newTestClient(r)

	err := c.InjectTouch(context.Background(), serial, 1, 2)
	if err == nil || err.Error() != "Command failed" {
		t.Errorf("Expected generic failure, got %v", err)
	}
	err = c.InjectTouch(context.Background(), serial, 3, 4)
	if err == nil || err.Error() != "input: not permitted" {
		t.Errorf("Expected trimmed stderr, got %v", err)
	}
}

func TestInvalidSerialNeverRuns(t *testing.T) {
	r := newFakeRunner()
	c := newTestClient(r)
	if _, err := c.Battery(context.Background(), "x; reboot"); err == nil {
		t.Error("Expected validation error")
	}
	if len(r.calls) != 0 {
		t.Errorf("Expected no process calls, got %v", r.calls)
	}
}

func TestDiagnosticsNeverFails(t *testing.T) {
	got, err := newTestClient(newFakeRunner()).Diagnostics(context.Background(), serial)
	if err != nil {
		t.Fatalf("Diagnostics failed: %v", err)
	}
	if got.Battery.Status != "Unknown" || got.Battery.Plugged != "Not Plugged" {
		t.Errorf("Unexpected battery defaults %+v", got.Battery)
	}
	if got.Sensors == nil || got.Display.SupportedModes == nil {
		t.Error("Expected non-nil empty lists")
	}
}

func TestBatteryThroughClient(t *testing.T) {
	r := newFakeRunner().
		stdout("-s emulator-5554 shell dumpsys battery", "  level: 42\n  status: 3\n  health: 2\n  USB powered: true\n").
		stdout("-s emulator-5554 shell cat /sys/class/power_supply/battery/current_now", "-250000\n")
	got, err := newTestClient(r).Battery(context.Background(), serial)
	if err != nil {
		t.Fatalf("Battery failed: %v", err)
	}
	level, current := 42, -250
	want := types.BatteryState{
		Level:      &level,
		Status:     "Discharging",
		Health:     "Good",
		Plugged:    "USB",
		FullCharge: new(bool),
		Current:    &current,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Battery mismatch (-want +got):\n%s", diff)
	}
}
