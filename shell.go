package main

import (
	"context"
	"fmt"
	"strings"

	"adbdesk/pkg/adb"
)

// RunAdbCommand runs a shell command on the device and returns its raw
// stdout. A leading "shell " is accepted for compatibility with the adb
// command line. Calls are throttled by shell_rate_per_sec.
func (a *App) RunAdbCommand(deviceId string, command string) (string, error) {
	command = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(command), "shell "))
	if command == "" {
		return "", nil
	}
	if err := adb.ValidateDeviceID(deviceId); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(a.opCtx(), a.client.Timeout())
	defer cancel()
	if err := a.shellLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("shell rate limit: %w", err)
	}

	a.settings.AddHistory(command)
	LogUserAction(ActionShellCommand, deviceId, map[string]interface{}{"command": command})

	out, err := a.client.RunShell(ctx, deviceId, command)
	if err != nil {
		return "", err
	}
	a.updateLastActive(deviceId)
	return out, nil
}

// GetCommandHistory returns past shell commands, oldest first.
func (a *App) GetCommandHistory() []string {
	return a.settings.History()
}

func (a *App) ClearCommandHistory() {
	a.settings.ClearHistory()
	a.saveSettings()
}
