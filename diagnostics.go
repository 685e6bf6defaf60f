package main

import (
	"fmt"

	"adbdesk/pkg/types"
)

// ========================================
// 设备诊断
// ========================================

// GetDiagnostics reads battery, display, sensors and connectivity in one call.
// Fields that cannot be read are left empty; only an invalid serial fails.
func (a *App) GetDiagnostics(deviceId string) (types.Diagnostics, error) {
	timer := StartOperation("diagnostics", "get_diagnostics").AddDetail("deviceId", deviceId)
	d, err := a.client.Diagnostics(a.opCtx(), deviceId)
	timer.Finish(err)
	return d, err
}

func (a *App) GetBatteryInfo(deviceId string) (types.BatteryState, error) {
	return a.client.Battery(a.opCtx(), deviceId)
}

func (a *App) GetDisplayInfo(deviceId string) (types.DisplayState, error) {
	return a.client.Display(a.opCtx(), deviceId)
}

func (a *App) GetSensors(deviceId string) ([]types.SensorRecord, error) {
	return a.client.Sensors(a.opCtx(), deviceId)
}

func (a *App) GetConnectivity(deviceId string) (types.ConnectivityState, error) {
	return a.client.Connectivity(a.opCtx(), deviceId)
}

// RunTouchTest reports touch capabilities and a short getevent sample.
func (a *App) RunTouchTest(deviceId string) (types.TouchTestResult, error) {
	return a.client.TouchTest(a.opCtx(), deviceId)
}

// DiagnosticsSection reads one of battery, display, sensors, connectivity
// or touch.
func (a *App) DiagnosticsSection(deviceId, section string) (interface{}, error) {
	switch section {
	case "battery":
		return a.GetBatteryInfo(deviceId)
	case "display":
		return a.GetDisplayInfo(deviceId)
	case "sensors":
		return a.GetSensors(deviceId)
	case "connectivity":
		return a.GetConnectivity(deviceId)
	case "touch":
		return a.RunTouchTest(deviceId)
	case "", "all":
		return a.GetDiagnostics(deviceId)
	default:
		return nil, fmt.Errorf("unknown diagnostics section %q", section)
	}
}

// ========================================
// 设备操作
// ========================================

func (a *App) InjectTouch(deviceId string, x, y int) error {
	err := a.client.InjectTouch(a.opCtx(), deviceId, x, y)
	LogUserAction(ActionTouch, deviceId, map[string]interface{}{"x": x, "y": y, "success": err == nil})
	return err
}

// SetBrightness switches adaptive brightness off and sets level (0-255).
func (a *App) SetBrightness(deviceId string, level int) error {
	err := a.client.SetBrightness(a.opCtx(), deviceId, level)
	LogUserAction(ActionBrightness, deviceId, map[string]interface{}{"level": level, "success": err == nil})
	return err
}

func (a *App) ToggleWifi(deviceId string, enable bool) error {
	err := a.client.ToggleWifi(a.opCtx(), deviceId, enable)
	LogUserAction(ActionWifiToggle, deviceId, map[string]interface{}{"enable": enable, "success": err == nil})
	return err
}

func (a *App) ToggleBluetooth(deviceId string, enable bool) error {
	err := a.client.ToggleBluetooth(a.opCtx(), deviceId, enable)
	LogUserAction(ActionBTToggle, deviceId, map[string]interface{}{"enable": enable, "success": err == nil})
	return err
}

// SimulateBatteryLevel unplugs the battery service and fakes level (0-100).
func (a *App) SimulateBatteryLevel(deviceId string, level int) error {
	err := a.client.SimulateBatteryLevel(a.opCtx(), deviceId, level)
	LogUserAction(ActionBatterySim, deviceId, map[string]interface{}{"level": level, "success": err == nil})
	return err
}

func (a *App) ResetBatterySimulation(deviceId string) error {
	err := a.client.ResetBatterySimulation(a.opCtx(), deviceId)
	LogUserAction(ActionBatteryReset, deviceId, map[string]interface{}{"success": err == nil})
	return err
}

func (a *App) TriggerVibration(deviceId string, durationMs int) error {
	err := a.client.TriggerVibration(a.opCtx(), deviceId, durationMs)
	LogUserAction(ActionVibrate, deviceId, map[string]interface{}{"durationMs": durationMs, "success": err == nil})
	return err
}
