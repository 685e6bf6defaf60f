package adb

import (
	"context"

	"adbdesk/pkg/dumpsys"
	"adbdesk/pkg/types"
)

// Devices lists attached devices.
func (c *Client) Devices(ctx context.Context) ([]types.Device, error) {
	out, err := c.output(ctx, "devices", "-l")
	if err != nil {
		return nil, err
	}
	return dumpsys.ParseDevices(string(out)), nil
}

// Connect attaches a device over TCP/IP. The returned text is adb's own report,
// which says "failed to connect" on a refused address even though adb exits 0.
func (c *Client) Connect(ctx context.Context, addr string) (string, error) {
	out, err := c.output(ctx, "connect", addr)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Pair performs wireless-debugging pairing.
func (c *Client) Pair(ctx context.Context, addr, code string) (string, error) {
	out, err := c.output(ctx, "pair", addr, code)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RestartServer kills and restarts the adb server. The kill step's exit status
// is ignored since there may be no server running.
func (c *Client) RestartServer(ctx context.Context) error {
	if _, err := c.run(ctx, "kill-server"); err != nil {
		return err
	}
	_, err := c.output(ctx, "start-server")
	return err
}

// DeviceProperties collects the static identity of a device.
func (c *Client) DeviceProperties(ctx context.Context, serial string) (types.DeviceProperties, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return types.DeviceProperties{}, err
	}
	return dumpsys.BuildDeviceProperties(c.Shell(ctx, serial)), nil
}

// RunShell runs cmd in the device shell and returns its raw stdout.
func (c *Client) RunShell(ctx context.Context, serial, cmd string) (string, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return "", err
	}
	out, err := c.output(ctx, deviceArgs(serial, "shell", cmd)...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Logcat dumps the last 500 log lines.
func (c *Client) Logcat(ctx context.Context, serial string) (string, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return "", err
	}
	out, err := c.output(ctx, deviceArgs(serial, "logcat", "-d", "-t", "500")...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// LogEntries is Logcat parsed into entries.
func (c *Client) LogEntries(ctx context.Context, serial string) ([]types.LogEntry, error) {
	out, err := c.Logcat(ctx, serial)
	if err != nil {
		return nil, err
	}
	return dumpsys.ParseLogcat(out), nil
}
