package adb

import (
	"context"
	"fmt"
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// firstAction runs cmds in order and stops at the first that succeeds.
func (c *Client) firstAction(ctx context.Context, serial string, failed error, cmds ...string) error {
	for _, cmd := range cmds {
		if c.Action(ctx, serial, cmd) == nil {
			return nil
		}
	}
	return failed
}

// InjectTouch taps at screen coordinates.
func (c *Client) InjectTouch(ctx context.Context, serial string, x, y int) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	return c.Action(ctx, serial, fmt.Sprintf("input tap %d %d", x, y))
}

// SetBrightness switches adaptive brightness off, then sets level (0-255).
func (c *Client) SetBrightness(ctx context.Context, serial string, level int) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	_ = c.Action(ctx, serial, "settings put system screen_brightness_mode 0")
	return c.Action(ctx, serial, fmt.Sprintf("settings put system screen_brightness %d", clamp(level, 0, 255)))
}

// ToggleWifi tries svc first and the Android 12+ cmd interface second.
func (c *Client) ToggleWifi(ctx context.Context, serial string, enable bool) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	return c.firstAction(ctx, serial, ErrToggleWifi,
		fmt.Sprintf("svc wifi %s", enableWord(enable)),
		fmt.Sprintf("cmd wifi set-wifi-enabled %t", enable),
	)
}

// ToggleBluetooth tries svc first and the bluetooth_manager service second.
func (c *Client) ToggleBluetooth(ctx context.Context, serial string, enable bool) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	action := enableWord(enable)
	return c.firstAction(ctx, serial, ErrToggleBluetooth,
		fmt.Sprintf("svc bluetooth %s", action),
		fmt.Sprintf("cmd bluetooth_manager %s 2>/dev/null", action),
	)
}

// SimulateBatteryLevel unplugs the battery service and fakes a level (0-100).
func (c *Client) SimulateBatteryLevel(ctx context.Context, serial string, level int) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	if err := c.Action(ctx, serial, "dumpsys battery unplug"); err != nil {
		return err
	}
	return c.Action(ctx, serial, fmt.Sprintf("dumpsys battery set level %d", clamp(level, 0, 100)))
}

// ResetBatterySimulation returns the battery service to real readings.
func (c *Client) ResetBatterySimulation(ctx context.Context, serial string) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	return c.Action(ctx, serial, "dumpsys battery reset")
}

// TriggerVibration tries the vibrator service (new, then old syntax) and falls
// back to a volume key pair for haptic feedback.
func (c *Client) TriggerVibration(ctx context.Context, serial string, durationMs int) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	return c.firstAction(ctx, serial, ErrVibration,
		fmt.Sprintf("cmd vibrator vibrate -f %d default", durationMs),
		fmt.Sprintf("cmd vibrator vibrate %d", durationMs),
		"input keyevent 24 && input keyevent 25",
	)
}

func enableWord(enable bool) string {
	if enable {
		return "enable"
	}
	return "disable"
}
