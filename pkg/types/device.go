package types

import "time"

// Device represents one attached device as reported by `adb devices -l`
type Device struct {
	Serial  string  `json:"serial"`
	State   string  `json:"state"` // device, offline, unauthorized, ...
	Model   *string `json:"model"`
	Product *string `json:"product"`
	Device  *string `json:"device"`
}

// DeviceProperties is the static hardware/software identity of a device.
// Every field is independently optional.
type DeviceProperties struct {
	// System
	AndroidVersion   *string `json:"android_version"`
	SDKVersion       *string `json:"sdk_version"`
	SecurityPatch    *string `json:"security_patch"`
	BuildID          *string `json:"build_id"`
	BuildFingerprint *string `json:"build_fingerprint"`

	// Hardware
	Manufacturer *string `json:"manufacturer"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Device       *string `json:"device"`
	Hardware     *string `json:"hardware"`
	Board        *string `json:"board"`
	Platform     *string `json:"platform"`
	CPUABI       *string `json:"cpu_abi"`

	// Display
	ScreenResolution *string `json:"screen_resolution"`
	ScreenDensity    *string `json:"screen_density"`

	// Identity
	WifiMAC      *string `json:"wifi_mac"`
	BluetoothMAC *string `json:"bluetooth_mac"`
	SerialNumber *string `json:"serial_number"`

	// Build
	Bootloader    *string `json:"bootloader"`
	Baseband      *string `json:"baseband"`
	KernelVersion *string `json:"kernel_version"`
	BuildType     *string `json:"build_type"`
	BuildTags     *string `json:"build_tags"`

	// Battery
	BatteryLevel       *string `json:"battery_level"`
	BatteryStatus      *string `json:"battery_status"`
	BatteryHealth      *string `json:"battery_health"`
	BatteryTemperature *string `json:"battery_temperature"`

	// Storage & memory
	InternalStorage  *string `json:"internal_storage"`
	AvailableStorage *string `json:"available_storage"`
	TotalRAM         *string `json:"total_ram"`
	AvailableRAM     *string `json:"available_ram"`
}

// DeviceMetadata is user-assigned presentation data for a device
type DeviceMetadata struct {
	Serial    string    `json:"serial"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MirrorSession is a running scrcpy process
type MirrorSession struct {
	ID        string    `json:"id"`
	Serial    string    `json:"serial"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// LogEntry is one parsed logcat line
type LogEntry struct {
	Raw       string `json:"raw"`
	Timestamp string `json:"timestamp,omitempty"`
	PID       string `json:"pid,omitempty"`
	TID       string `json:"tid,omitempty"`
	Level     string `json:"level,omitempty"` // V, D, I, W, E, F
	Tag       string `json:"tag,omitempty"`
	Message   string `json:"message"`
}

// KnownDevice is a device that has been attached at least once
type KnownDevice struct {
	Serial    string    `json:"serial"`
	Model     string    `json:"model"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// DeviceView is a device as the front ends list it: the adb record plus the
// user's label and the app's own bookkeeping.
type DeviceView struct {
	Device
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	LastActive int64  `json:"lastActive"`
	IsPinned   bool   `json:"isPinned"`
}
