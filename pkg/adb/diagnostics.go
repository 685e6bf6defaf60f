package adb

import (
	"context"

	"adbdesk/pkg/dumpsys"
	"adbdesk/pkg/types"
)

// Diagnostics gathers battery, display, sensor and connectivity state. The
// groups are read one after another and never fail as a whole; missing data
// shows up as absent fields.
func (c *Client) Diagnostics(ctx context.Context, serial string) (types.Diagnostics, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return types.Diagnostics{}, err
	}
	sh := c.Shell(ctx, serial)
	return types.Diagnostics{
		Battery:      dumpsys.BuildBattery(sh),
		Display:      dumpsys.BuildDisplay(sh),
		Sensors:      dumpsys.BuildSensors(sh),
		Connectivity: dumpsys.BuildConnectivity(sh),
	}, nil
}

func (c *Client) Battery(ctx context.Context, serial string) (types.BatteryState, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return types.BatteryState{}, err
	}
	return dumpsys.BuildBattery(c.Shell(ctx, serial)), nil
}

func (c *Client) Display(ctx context.Context, serial string) (types.DisplayState, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return types.DisplayState{}, err
	}
	return dumpsys.BuildDisplay(c.Shell(ctx, serial)), nil
}

func (c *Client) Sensors(ctx context.Context, serial string) ([]types.SensorRecord, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return nil, err
	}
	return dumpsys.BuildSensors(c.Shell(ctx, serial)), nil
}

func (c *Client) Connectivity(ctx context.Context, serial string) (types.ConnectivityState, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return types.ConnectivityState{}, err
	}
	return dumpsys.BuildConnectivity(c.Shell(ctx, serial)), nil
}

// TouchTest inspects the touchscreen and samples raw input events.
func (c *Client) TouchTest(ctx context.Context, serial string) (types.TouchTestResult, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return types.TouchTestResult{}, err
	}
	return dumpsys.BuildTouchTest(c.Shell(ctx, serial)), nil
}
