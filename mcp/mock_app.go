package mcp

import (
	"errors"
	"sync"
	"time"
)

// MockCall records a method call for verification
type MockCall struct {
	Method string
	Args   []interface{}
}

// MockDeskApp is a mock implementation of DeskApp for testing
type MockDeskApp struct {
	mu    sync.Mutex
	Calls []MockCall

	// Device Management
	GetDevicesResult       []Device
	GetDevicesError        error
	GetDeviceInfoResult    DeviceProperties
	GetDeviceInfoError     error
	AdbConnectResult       string
	AdbConnectError        error
	AdbPairResult          string
	AdbPairError           error
	RestartAdbServerResult string
	RestartAdbServerError  error
	GetKnownDevicesResult  []KnownDevice
	GetKnownDevicesError   error

	// Files
	ListFilesResult      []FileEntry
	ListFilesError       error
	PullFileResult       string
	PullFileError        error
	PushFileResult       string
	PushFileError        error
	ReadDeviceFileResult string
	ReadDeviceFileError  error
	DeleteFileResult     string
	DeleteFileError      error
	MoveFileResult       string
	MoveFileError        error
	CreateFolderResult   string
	CreateFolderError    error

	// App Management
	ListPackagesResult []PackageSummary
	ListPackagesError  error
	GetAppInfoResult   PackageDetails
	GetAppInfoError    error
	StartAppError      error
	ForceStopAppError  error
	SetAppEnabledError error
	InstallAPKResult   string
	InstallAPKError    error
	UninstallAppResult string
	UninstallAppError  error
	ClearAppDataError  error

	// Diagnostics
	DiagnosticsResult interface{}
	DiagnosticsError  error
	ActionError       error

	// Shell & Logcat
	RunAdbCommandResult string
	RunAdbCommandError  error
	GetLogEntriesResult []LogEntry
	GetLogEntriesError  error

	// Mirroring
	StartScrcpyResult string
	StartScrcpyError  error
	StopScrcpyError   error
	MirrorSessions    []MirrorSession

	// Utility
	AppVersion string
}

// NewMockDeskApp creates a new MockDeskApp with sensible defaults
func NewMockDeskApp() *MockDeskApp {
	return &MockDeskApp{
		Calls:              make([]MockCall, 0),
		AppVersion:         "1.0.0-test",
		GetDevicesResult:   []Device{},
		ListPackagesResult: []PackageSummary{},
		ListFilesResult:    []FileEntry{},
	}
}

// recordCall records a method call
func (m *MockDeskApp) recordCall(method string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

// GetCalls returns all recorded calls
func (m *MockDeskApp) GetCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall{}, m.Calls...)
}

// WasMethodCalled checks if a method was called
func (m *MockDeskApp) WasMethodCalled(method string) bool {
	return m.GetLastCallByMethod(method) != nil
}

// GetLastCallByMethod returns the last call to a specific method
func (m *MockDeskApp) GetLastCallByMethod(method string) *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Method == method {
			c := m.Calls[i]
			return &c
		}
	}
	return nil
}

// SetupWithDevices replaces the device list
func (m *MockDeskApp) SetupWithDevices(devices ...Device) {
	m.GetDevicesResult = devices
}

func (m *MockDeskApp) GetAppVersion() string {
	m.recordCall("GetAppVersion")
	return m.AppVersion
}

// === Device Management ===

func (m *MockDeskApp) GetDevices() ([]Device, error) {
	m.recordCall("GetDevices")
	return m.GetDevicesResult, m.GetDevicesError
}

func (m *MockDeskApp) GetDeviceInfo(deviceId string) (DeviceProperties, error) {
	m.recordCall("GetDeviceInfo", deviceId)
	return m.GetDeviceInfoResult, m.GetDeviceInfoError
}

func (m *MockDeskApp) AdbConnect(address string) (string, error) {
	m.recordCall("AdbConnect", address)
	return m.AdbConnectResult, m.AdbConnectError
}

func (m *MockDeskApp) AdbPair(address string, code string) (string, error) {
	m.recordCall("AdbPair", address, code)
	return m.AdbPairResult, m.AdbPairError
}

func (m *MockDeskApp) RestartAdbServer() (string, error) {
	m.recordCall("RestartAdbServer")
	return m.RestartAdbServerResult, m.RestartAdbServerError
}

func (m *MockDeskApp) GetKnownDevices() ([]KnownDevice, error) {
	m.recordCall("GetKnownDevices")
	return m.GetKnownDevicesResult, m.GetKnownDevicesError
}

// === Files ===

func (m *MockDeskApp) ListFiles(deviceId, path string) ([]FileEntry, error) {
	m.recordCall("ListFiles", deviceId, path)
	return m.ListFilesResult, m.ListFilesError
}

func (m *MockDeskApp) PullFile(deviceId, remotePath, localPath string) (string, error) {
	m.recordCall("PullFile", deviceId, remotePath, localPath)
	return m.PullFileResult, m.PullFileError
}

func (m *MockDeskApp) PushFile(deviceId, localPath, remotePath string) (string, error) {
	m.recordCall("PushFile", deviceId, localPath, remotePath)
	return m.PushFileResult, m.PushFileError
}

func (m *MockDeskApp) ReadDeviceFile(deviceId, path string) (string, error) {
	m.recordCall("ReadDeviceFile", deviceId, path)
	return m.ReadDeviceFileResult, m.ReadDeviceFileError
}

func (m *MockDeskApp) DeleteFile(deviceId, path string) (string, error) {
	m.recordCall("DeleteFile", deviceId, path)
	return m.DeleteFileResult, m.DeleteFileError
}

func (m *MockDeskApp) MoveFile(deviceId, src, dest string) (string, error) {
	m.recordCall("MoveFile", deviceId, src, dest)
	return m.MoveFileResult, m.MoveFileError
}

func (m *MockDeskApp) CreateFolder(deviceId, path string) (string, error) {
	m.recordCall("CreateFolder", deviceId, path)
	return m.CreateFolderResult, m.CreateFolderError
}

// === App Management ===

func (m *MockDeskApp) ListPackages(deviceId string, includeSystem bool) ([]PackageSummary, error) {
	m.recordCall("ListPackages", deviceId, includeSystem)
	return m.ListPackagesResult, m.ListPackagesError
}

func (m *MockDeskApp) GetAppInfo(deviceId, packageName string) (PackageDetails, error) {
	m.recordCall("GetAppInfo", deviceId, packageName)
	return m.GetAppInfoResult, m.GetAppInfoError
}

func (m *MockDeskApp) StartApp(deviceId, packageName string) error {
	m.recordCall("StartApp", deviceId, packageName)
	return m.StartAppError
}

func (m *MockDeskApp) ForceStopApp(deviceId, packageName string) error {
	m.recordCall("ForceStopApp", deviceId, packageName)
	return m.ForceStopAppError
}

func (m *MockDeskApp) SetAppEnabled(deviceId, packageName string, enabled bool) error {
	m.recordCall("SetAppEnabled", deviceId, packageName, enabled)
	return m.SetAppEnabledError
}

func (m *MockDeskApp) InstallAPK(deviceId string, path string) (string, error) {
	m.recordCall("InstallAPK", deviceId, path)
	return m.InstallAPKResult, m.InstallAPKError
}

func (m *MockDeskApp) UninstallApp(deviceId, packageName string) (string, error) {
	m.recordCall("UninstallApp", deviceId, packageName)
	return m.UninstallAppResult, m.UninstallAppError
}

func (m *MockDeskApp) ClearAppData(deviceId, packageName string) error {
	m.recordCall("ClearAppData", deviceId, packageName)
	return m.ClearAppDataError
}

// === Diagnostics ===

func (m *MockDeskApp) DiagnosticsSection(deviceId, section string) (interface{}, error) {
	m.recordCall("DiagnosticsSection", deviceId, section)
	return m.DiagnosticsResult, m.DiagnosticsError
}

func (m *MockDeskApp) InjectTouch(deviceId string, x, y int) error {
	m.recordCall("InjectTouch", deviceId, x, y)
	return m.ActionError
}

func (m *MockDeskApp) SetBrightness(deviceId string, level int) error {
	m.recordCall("SetBrightness", deviceId, level)
	return m.ActionError
}

func (m *MockDeskApp) ToggleWifi(deviceId string, enable bool) error {
	m.recordCall("ToggleWifi", deviceId, enable)
	return m.ActionError
}

func (m *MockDeskApp) ToggleBluetooth(deviceId string, enable bool) error {
	m.recordCall("ToggleBluetooth", deviceId, enable)
	return m.ActionError
}

func (m *MockDeskApp) SimulateBatteryLevel(deviceId string, level int) error {
	m.recordCall("SimulateBatteryLevel", deviceId, level)
	return m.ActionError
}

func (m *MockDeskApp) ResetBatterySimulation(deviceId string) error {
	m.recordCall("ResetBatterySimulation", deviceId)
	return m.ActionError
}

func (m *MockDeskApp) TriggerVibration(deviceId string, durationMs int) error {
	m.recordCall("TriggerVibration", deviceId, durationMs)
	return m.ActionError
}

// === Shell & Logcat ===

func (m *MockDeskApp) RunAdbCommand(deviceId string, command string) (string, error) {
	m.recordCall("RunAdbCommand", deviceId, command)
	return m.RunAdbCommandResult, m.RunAdbCommandError
}

func (m *MockDeskApp) GetLogEntries(deviceId, minLevel, filter string) ([]LogEntry, error) {
	m.recordCall("GetLogEntries", deviceId, minLevel, filter)
	return m.GetLogEntriesResult, m.GetLogEntriesError
}

// === Mirroring ===

func (m *MockDeskApp) StartScrcpy(deviceId string) (string, error) {
	m.recordCall("StartScrcpy", deviceId)
	return m.StartScrcpyResult, m.StartScrcpyError
}

func (m *MockDeskApp) StopScrcpy(deviceId string) error {
	m.recordCall("StopScrcpy", deviceId)
	return m.StopScrcpyError
}

func (m *MockDeskApp) GetMirrorSessions() []MirrorSession {
	m.recordCall("GetMirrorSessions")
	return m.MirrorSessions
}

// Common errors for testing
var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrCommandFailed  = errors.New("Command failed")
)

// Sample test data factories

func strPtr(s string) *string { return &s }

// SampleDevice returns a sample device for testing
func SampleDevice(serial string) Device {
	d := Device{LastActive: 1700000000}
	d.Serial = serial
	d.State = "device"
	d.Model = strPtr("Pixel_6")
	d.Product = strPtr("oriole")
	d.Device.Device = strPtr("oriole")
	return d
}

// SampleDeviceProperties returns sample device properties for testing
func SampleDeviceProperties() DeviceProperties {
	return DeviceProperties{
		Manufacturer:     strPtr("Google"),
		Brand:            strPtr("google"),
		Model:            strPtr("Pixel 6"),
		AndroidVersion:   strPtr("14"),
		SDKVersion:       strPtr("34"),
		CPUABI:           strPtr("arm64-v8a"),
		ScreenResolution: strPtr("1080x2400"),
		BatteryLevel:     strPtr("85%"),
	}
}

// SamplePackage returns a sample package summary for testing
func SamplePackage(id string, system bool) PackageSummary {
	return PackageSummary{
		PackageID: id,
		Path:      "/data/app/" + id + "/base.apk",
		IsSystem:  system,
		IsEnabled: true,
	}
}

// SampleMirrorSession returns a running session started a minute ago
func SampleMirrorSession(serial string) MirrorSession {
	return MirrorSession{
		ID:        "sess-" + serial,
		Serial:    serial,
		PID:       4242,
		StartedAt: time.Now().Add(-time.Minute),
	}
}
