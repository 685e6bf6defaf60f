package main

import (
	"adbdesk/mcp"
)

// MCPBridge bridges the main App to the MCP server
type MCPBridge struct {
	app *App
}

var _ mcp.DeskApp = (*MCPBridge)(nil)

// NewMCPBridge creates a new MCP bridge
func NewMCPBridge(app *App) *MCPBridge {
	return &MCPBridge{app: app}
}

func (b *MCPBridge) GetAppVersion() string {
	return b.app.GetAppVersion()
}

// Device Management

func (b *MCPBridge) GetDevices() ([]mcp.Device, error) {
	return b.app.GetDevices()
}

func (b *MCPBridge) GetDeviceInfo(deviceId string) (mcp.DeviceProperties, error) {
	return b.app.GetDeviceInfo(deviceId)
}

func (b *MCPBridge) AdbConnect(address string) (string, error) {
	return b.app.AdbConnect(address)
}

func (b *MCPBridge) AdbPair(address string, code string) (string, error) {
	return b.app.AdbPair(address, code)
}

func (b *MCPBridge) RestartAdbServer() (string, error) {
	return b.app.RestartAdbServer()
}

func (b *MCPBridge) GetKnownDevices() ([]mcp.KnownDevice, error) {
	return b.app.GetKnownDevices()
}

// Files

func (b *MCPBridge) ListFiles(deviceId, path string) ([]mcp.FileEntry, error) {
	return b.app.ListFiles(deviceId, path)
}

func (b *MCPBridge) PullFile(deviceId, remotePath, localPath string) (string, error) {
	return b.app.PullFile(deviceId, remotePath, localPath)
}

func (b *MCPBridge) PushFile(deviceId, localPath, remotePath string) (string, error) {
	return b.app.PushFile(deviceId, localPath, remotePath)
}

func (b *MCPBridge) ReadDeviceFile(deviceId, path string) (string, error) {
	return b.app.ReadDeviceFile(deviceId, path)
}

func (b *MCPBridge) DeleteFile(deviceId, path string) (string, error) {
	return b.app.DeleteFile(deviceId, path)
}

func (b *MCPBridge) MoveFile(deviceId, src, dest string) (string, error) {
	return b.app.MoveFile(deviceId, src, dest)
}

func (b *MCPBridge) CreateFolder(deviceId, path string) (string, error) {
	return b.app.CreateFolder(deviceId, path)
}

// App Management

func (b *MCPBridge) ListPackages(deviceId string, includeSystem bool) ([]mcp.PackageSummary, error) {
	return b.app.ListPackages(deviceId, includeSystem)
}

func (b *MCPBridge) GetAppInfo(deviceId, packageName string) (mcp.PackageDetails, error) {
	return b.app.GetAppInfo(deviceId, packageName)
}

func (b *MCPBridge) StartApp(deviceId, packageName string) error {
	return b.app.StartApp(deviceId, packageName)
}

func (b *MCPBridge) ForceStopApp(deviceId, packageName string) error {
	return b.app.ForceStopApp(deviceId, packageName)
}

// SetAppEnabled folds EnableApp and DisableApp into one tool.
func (b *MCPBridge) SetAppEnabled(deviceId, packageName string, enabled bool) error {
	if enabled {
		return b.app.EnableApp(deviceId, packageName)
	}
	return b.app.DisableApp(deviceId, packageName)
}

func (b *MCPBridge) InstallAPK(deviceId string, path string) (string, error) {
	return b.app.InstallAPK(deviceId, path)
}

func (b *MCPBridge) UninstallApp(deviceId, packageName string) (string, error) {
	return b.app.UninstallApp(deviceId, packageName)
}

func (b *MCPBridge) ClearAppData(deviceId, packageName string) error {
	return b.app.ClearAppData(deviceId, packageName)
}

// Diagnostics

func (b *MCPBridge) DiagnosticsSection(deviceId, section string) (interface{}, error) {
	return b.app.DiagnosticsSection(deviceId, section)
}

func (b *MCPBridge) InjectTouch(deviceId string, x, y int) error {
	return b.app.InjectTouch(deviceId, x, y)
}

func (b *MCPBridge) SetBrightness(deviceId string, level int) error {
	return b.app.SetBrightness(deviceId, level)
}

func (b *MCPBridge) ToggleWifi(deviceId string, enable bool) error {
	return b.app.ToggleWifi(deviceId, enable)
}

func (b *MCPBridge) ToggleBluetooth(deviceId string, enable bool) error {
	return b.app.ToggleBluetooth(deviceId, enable)
}

func (b *MCPBridge) SimulateBatteryLevel(deviceId string, level int) error {
	return b.app.SimulateBatteryLevel(deviceId, level)
}

func (b *MCPBridge) ResetBatterySimulation(deviceId string) error {
	return b.app.ResetBatterySimulation(deviceId)
}

func (b *MCPBridge) TriggerVibration(deviceId string, durationMs int) error {
	return b.app.TriggerVibration(deviceId, durationMs)
}

// Shell & Logcat

func (b *MCPBridge) RunAdbCommand(deviceId string, command string) (string, error) {
	return b.app.RunAdbCommand(deviceId, command)
}

func (b *MCPBridge) GetLogEntries(deviceId, minLevel, filter string) ([]mcp.LogEntry, error) {
	return b.app.GetLogEntries(deviceId, minLevel, filter)
}

// Mirroring

func (b *MCPBridge) StartScrcpy(deviceId string) (string, error) {
	return b.app.StartScrcpy(deviceId)
}

func (b *MCPBridge) StopScrcpy(deviceId string) error {
	return b.app.StopScrcpy(deviceId)
}

func (b *MCPBridge) GetMirrorSessions() []mcp.MirrorSession {
	return b.app.GetMirrorSessions()
}
