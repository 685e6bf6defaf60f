package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerDiagnosticsTools registers hardware diagnostics and device control tools
func (s *MCPServer) registerDiagnosticsTools() {
	s.server.AddTool(
		mcp.NewTool("device_diagnostics",
			mcp.WithDescription("Read hardware diagnostics. Fields the device does not report are null."),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("section",
				mcp.Description("Section to read"),
				mcp.Enum("all", "battery", "display", "sensors", "connectivity", "touch"),
			),
		),
		s.handleDeviceDiagnostics,
	)

	s.server.AddTool(
		mcp.NewTool("device_tap",
			mcp.WithDescription("Inject a tap at screen coordinates"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("X coordinate in pixels")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Y coordinate in pixels")),
		),
		s.handleDeviceTap,
	)

	s.server.AddTool(
		mcp.NewTool("device_brightness",
			mcp.WithDescription("Turn off adaptive brightness and set the level"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithNumber("level", mcp.Required(), mcp.Description("Brightness 0-255")),
		),
		s.handleDeviceBrightness,
	)

	s.server.AddTool(
		mcp.NewTool("device_radio",
			mcp.WithDescription("Switch Wi-Fi or Bluetooth on or off"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("radio", mcp.Required(), mcp.Enum("wifi", "bluetooth"), mcp.Description("Radio to switch")),
			mcp.WithBoolean("enable", mcp.Required(), mcp.Description("true to switch on")),
		),
		s.handleDeviceRadio,
	)

	s.server.AddTool(
		mcp.NewTool("battery_simulate",
			mcp.WithDescription("Fake the reported battery level, or reset to the real battery"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithNumber("level", mcp.Description("Level 0-100; omit together with reset=true")),
			mcp.WithBoolean("reset", mcp.Description("Restore the real battery state")),
		),
		s.handleBatterySimulate,
	)

	s.server.AddTool(
		mcp.NewTool("device_vibrate",
			mcp.WithDescription("Vibrate the device"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithNumber("duration_ms", mcp.Required(), mcp.Description("Duration in milliseconds")),
		),
		s.handleDeviceVibrate,
	)
}

func (s *MCPServer) handleDeviceDiagnostics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	section := optionalString(args, "section")

	result, err := s.app.DiagnosticsSection(deviceID, section)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagnostics: %w", err)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize diagnostics: %w", err)
	}
	return textResult(string(jsonData)), nil
}

func (s *MCPServer) handleDeviceTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	x, err := requireInt(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := requireInt(args, "y")
	if err != nil {
		return nil, err
	}

	if err := s.app.InjectTouch(deviceID, x, y); err != nil {
		return nil, fmt.Errorf("failed to tap: %w", err)
	}
	return textResult(fmt.Sprintf("Tapped at (%d, %d)", x, y)), nil
}

func (s *MCPServer) handleDeviceBrightness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	level, err := requireInt(args, "level")
	if err != nil {
		return nil, err
	}

	if err := s.app.SetBrightness(deviceID, level); err != nil {
		return nil, fmt.Errorf("failed to set brightness: %w", err)
	}
	return textResult(fmt.Sprintf("Brightness set to %d", level)), nil
}

func (s *MCPServer) handleDeviceRadio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	radio, err := requireString(args, "radio")
	if err != nil {
		return nil, err
	}
	enable, err := requireBool(args, "enable")
	if err != nil {
		return nil, err
	}

	switch radio {
	case "wifi":
		err = s.app.ToggleWifi(deviceID, enable)
	case "bluetooth":
		err = s.app.ToggleBluetooth(deviceID, enable)
	default:
		return nil, fmt.Errorf("unknown radio %q", radio)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to switch %s: %w", radio, err)
	}

	state := "off"
	if enable {
		state = "on"
	}
	return textResult(fmt.Sprintf("%s switched %s", radio, state)), nil
}

func (s *MCPServer) handleBatterySimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}

	if reset, _ := args["reset"].(bool); reset {
		if err := s.app.ResetBatterySimulation(deviceID); err != nil {
			return nil, fmt.Errorf("failed to reset battery: %w", err)
		}
		return textResult("Battery simulation reset"), nil
	}

	level, err := requireInt(args, "level")
	if err != nil {
		return nil, err
	}
	if err := s.app.SimulateBatteryLevel(deviceID, level); err != nil {
		return nil, fmt.Errorf("failed to simulate battery: %w", err)
	}
	return textResult(fmt.Sprintf("Battery level simulated at %d%%", level)), nil
}

func (s *MCPServer) handleDeviceVibrate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	duration, err := requireInt(args, "duration_ms")
	if err != nil {
		return nil, err
	}

	if err := s.app.TriggerVibration(deviceID, duration); err != nil {
		return nil, fmt.Errorf("failed to vibrate: %w", err)
	}
	return textResult(fmt.Sprintf("Vibrated for %d ms", duration)), nil
}
