package adb

import (
	"errors"
	"strings"
)

const genericFailure = "Command failed"

var (
	ErrNoAdb           = errors.New("ADB path is not initialized")
	ErrToggleWifi      = errors.New("Failed to toggle WiFi - may require root or device policy restrictions")
	ErrToggleBluetooth = errors.New("Failed to toggle Bluetooth - may require root or device policy restrictions")
	ErrVibration       = errors.New("Failed to trigger vibration")
)

// CommandError is a command that ran but did not succeed. Its text is the
// output the tool printed about the failure (normally stderr), or
// "Command failed" when it printed nothing.
type CommandError struct {
	Args     []string
	Output   string
	ExitCode int
}

func (e *CommandError) Error() string {
	if msg := strings.TrimSpace(e.Output); msg != "" {
		return msg
	}
	return genericFailure
}

// IsCommandError reports whether err is (or wraps) a CommandError.
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}
