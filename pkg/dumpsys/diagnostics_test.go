package dumpsys

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"adbdesk/pkg/types"
)

func ptr[T any](v T) *T { return &v }

// Captured from a Pixel 7 on USB, trimmed.
const pixelDumpsysBattery = `Current Battery Service state:
  AC powered: false
  USB powered: true
  Wireless powered: false
  Max charging current: 500000
  Max charging voltage: 5000000
  Charge counter: 3800000
  status: 2
  health: 2
  present: true
  level: 85
  scale: 100
  voltage: 4350
  temperature: 355
  technology: Li-ion
`

func TestBatteryFromDump(t *testing.T) {
	got := BatteryFromDump(pixelDumpsysBattery)
	want := types.BatteryState{
		Level:              ptr(85),
		Status:             "Charging",
		Health:             "Good",
		Temperature:        ptr(35.5),
		Voltage:            ptr(4350),
		Technology:         ptr("Li-ion"),
		Plugged:            PluggedUSB,
		FullCharge:         ptr(false),
		MaxChargingCurrent: ptr(500),
		MaxChargingVoltage: ptr(5000),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BatteryFromDump mismatch (-want +got):\n%s", diff)
	}
}

func TestBatteryFromEmptyDump(t *testing.T) {
	got := BatteryFromDump("")
	want := types.BatteryState{
		Status:  "Unknown",
		Health:  "Unknown",
		Plugged: PluggedNone,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BatteryFromDump(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestBatteryNonFiniteTemperature(t *testing.T) {
	for _, raw := range []string{"nan", "NaN", "inf", "-Inf", "+infinity"} {
		got := BatteryFromDump("  level: 50\n  temperature: " + raw + "\n")
		if got.Temperature != nil {
			t.Errorf("temperature %q: got %v, want absent", raw, *got.Temperature)
		}
		if _, err := json.Marshal(got); err != nil {
			t.Errorf("temperature %q: record does not encode: %v", raw, err)
		}
	}
}

func TestBatteryFullCharge(t *testing.T) {
	got := BatteryFromDump("level: 100\nstatus: 5")
	if got.FullCharge == nil || !*got.FullCharge {
		t.Errorf("Expected full charge at level 100, got %v", got.FullCharge)
	}
	if got.Status != "Full" {
		t.Errorf("Expected status Full, got %q", got.Status)
	}
}

func TestPluggedSource(t *testing.T) {
	tests := []struct {
		dump string
		want string
	}{
		{"AC powered: true\nUSB powered: true", PluggedACUSB},
		{"AC powered: true\nUSB powered: false", PluggedAC},
		{"USB powered: true", PluggedUSB},
		{"Wireless powered: true", PluggedWireless},
		{"AC powered: false", PluggedNone},
	}
	for _, tt := range tests {
		if got := pluggedSource(tt.dump); got != tt.want {
			t.Errorf("pluggedSource(%q) = %q, want %q", tt.dump, got, tt.want)
		}
	}
}

func TestBuildBattery(t *testing.T) {
	sh := MapShell{
		cmdDumpsysBattery:   pixelDumpsysBattery,
		cmdCurrentNow:       "-1500000\n",
		cmdChargeFullDesign: "4500000",
		cmdChargeCounter:    "3800000",
	}
	got := BuildBattery(sh)

	if got.Current == nil || *got.Current != -1500 {
		t.Errorf("Current = %v, want -1500", got.Current)
	}
	if got.Capacity == nil || *got.Capacity != 4500 {
		t.Errorf("Capacity = %v, want 4500", got.Capacity)
	}
	if got.ChargeCounter == nil || *got.ChargeCounter != 3800000 {
		t.Errorf("ChargeCounter = %v, want 3800000", got.ChargeCounter)
	}
	if got.Level == nil || *got.Level != 85 {
		t.Errorf("Level = %v, want 85", got.Level)
	}
}

func TestBuildBatteryWithoutSysfs(t *testing.T) {
	got := BuildBattery(MapShell{
		cmdDumpsysBattery: pixelDumpsysBattery,
		cmdCurrentNow:     "cat: /sys/class/power_supply/battery/current_now: Permission denied",
	})
	if got.Current != nil || got.Capacity != nil || got.ChargeCounter != nil {
		t.Errorf("Expected sysfs fields absent, got current=%v capacity=%v counter=%v",
			got.Current, got.Capacity, got.ChargeCounter)
	}
}

func TestBuildDisplay(t *testing.T) {
	sh := MapShell{
		cmdWmSize:          "Physical size: 1080x2400",
		cmdWmDensity:       "Physical density: 420",
		cmdRenderFrameRate: "    renderFrameRate=120.0",
		cmdDisplayHDR:      "  mHdrCapabilities=HdrCapabilities{mSupportedHdrTypes=[HDR10, HLG]}\n  hdr off",
		cmdDisplayModes: strings.Join([]string{
			"mSupportedModes=",
			"  1080x2400@60.0",
			"  1080x2400@90.0",
			"  1080x2400@120.0",
			"  1440x3120@60.0",
			"  1440x3120@90.0",
			"  1440x3120@120.0",
			"  720x1600@60.0",
		}, "\n"),
		"settings get system screen_brightness":      "128",
		"settings get system screen_brightness_mode": "1",
	}
	got := BuildDisplay(sh)
	want := types.DisplayState{
		Resolution:      ptr("1080x2400"),
		Density:         ptr("420 dpi"),
		RefreshRate:     ptr("120.0 Hz"),
		HDRCapabilities: ptr("mHdrCapabilities=HdrCapabilities{mSupportedHdrTypes=[HDR10, HLG]}"),
		SupportedModes: []string{
			"1080x2400@60.0",
			"1080x2400@90.0",
			"1080x2400@120.0",
			"1440x3120@60.0",
			"1440x3120@90.0",
		},
		Brightness:         ptr(128),
		AdaptiveBrightness: ptr(true),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildDisplay mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDisplayRefreshFallback(t *testing.T) {
	got := BuildDisplay(MapShell{
		cmdDisplayRefresh: "  refreshRate: 60.0\n  mDefaultModeId=1",
		cmdDisplayHDR:     "no capabilities",
		"settings get system screen_brightness_mode": "0",
	})
	if got.RefreshRate == nil || *got.RefreshRate != "60.0 Hz" {
		t.Errorf("RefreshRate = %v, want 60.0 Hz", got.RefreshRate)
	}
	if got.HDRCapabilities != nil {
		t.Errorf("Expected no HDR capabilities, got %q", *got.HDRCapabilities)
	}
	if got.AdaptiveBrightness == nil || *got.AdaptiveBrightness {
		t.Errorf("AdaptiveBrightness = %v, want false", got.AdaptiveBrightness)
	}
	if got.SupportedModes == nil || len(got.SupportedModes) != 0 {
		t.Errorf("Expected empty non-nil modes, got %v", got.SupportedModes)
	}
}

func TestBuildSensorsStructured(t *testing.T) {
	sh := MapShell{
		cmdSensorList: "0x00000001 | LSM6DSO Accelerometer | STMicro | active\n" +
			"0x00000002 | LSM6DSO Gyroscope | STMicro\n" +
			"0x00000003 |  | nobody\n" +
			"garbage line",
	}
	got := BuildSensors(sh)
	want := []types.SensorRecord{
		{Name: "LSM6DSO Accelerometer", Vendor: ptr("STMicro"), Status: types.SensorActive},
		{Name: "LSM6DSO Gyroscope", Vendor: ptr("STMicro"), Status: types.SensorActive},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildSensors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSensorsKeywordFallback(t *testing.T) {
	got := BuildSensors(MapShell{
		cmdSensorService: "Gyroscope sensor registered",
	})
	want := []types.SensorRecord{
		{Name: "Gyroscope", SensorType: ptr("gyroscope"), Status: types.SensorDetected},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildSensors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSensorsNothing(t *testing.T) {
	got := BuildSensors(MapShell{})
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", got)
	}
}

func TestBuildConnectivity(t *testing.T) {
	sh := MapShell{
		cmdWifiDump: `Wi-Fi is enabled
mWifiInfo SSID: "HomeNet", BSSID: 02:00:00:00:00:00
SSID: "HomeNet"
RSSI: -55 dBm
Frequency: 5180 MHz
Link speed: 866 Mbps`,
		cmdWifiIP: "192.168.1.20",
		cmdBluetoothDump: `  enabled: true
  address: AA:BB:CC:DD:EE:FF
  Bonded: Pixel Buds
  Bonded: Watch`,
		"settings get secure bluetooth_name": "Pixel 7",
		cmdTelephonyDump: `  mSignalStrength: -95 dBm
  mDataNetworkType=13`,
		cmdCarrier:                            "T-Mobile",
		"settings get global mobile_data":      "1",
		"settings get global airplane_mode_on": "0",
	}
	got := BuildConnectivity(sh)
	want := types.ConnectivityState{
		WifiEnabled:        true,
		WifiConnected:      true,
		WifiSSID:           ptr("HomeNet"),
		WifiSignalStrength: ptr(-55),
		WifiFrequency:      ptr("5180 MHz"),
		WifiLinkSpeed:      ptr("866 Mbps"),
		WifiIP:             ptr("192.168.1.20"),
		BluetoothEnabled:   true,
		BluetoothName:      ptr("Pixel 7"),
		BluetoothAddress:   ptr("AA:BB:CC:DD:EE:FF"),
		PairedDevicesCount: 2,
		MobileDataEnabled:  true,
		Carrier:            ptr("T-Mobile"),
		SignalStrength:     ptr("-95 dBm"),
		NetworkType:        ptr("LTE"),
		AirplaneMode:       false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildConnectivity mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildConnectivityAllSourcesFail(t *testing.T) {
	got := BuildConnectivity(MapShell{})
	if diff := cmp.Diff(types.ConnectivityState{}, got); diff != "" {
		t.Errorf("Expected zero state (-want +got):\n%s", diff)
	}
}

func TestBuildConnectivityBluetoothSettingFallback(t *testing.T) {
	got := BuildConnectivity(MapShell{
		"settings get global bluetooth_on":     "1",
		"settings get global airplane_mode_on": "1",
		cmdTelephonyDump:                       "networkType=99",
	})
	if !got.BluetoothEnabled {
		t.Error("Expected bluetooth enabled from settings")
	}
	if !got.AirplaneMode {
		t.Error("Expected airplane mode on")
	}
	if got.NetworkType == nil || *got.NetworkType != "99" {
		t.Errorf("NetworkType = %v, want passthrough 99", got.NetworkType)
	}
}

func TestBuildTouchTest(t *testing.T) {
	sh := MapShell{
		cmdTouchSlots: "    ABS_MT_SLOT           : value 0, min 0, max 9, fuzz 0, flat 0, resolution 0",
		cmdTouchSample: strings.Join([]string{
			"[ 1.0] /dev/input/event2: EV_ABS ABS_MT_SLOT 00000000",
			"[ 1.1] /dev/input/event2: EV_ABS ABS_MT_TRACKING_ID 00000001",
			"[ 1.2] /dev/input/event2: EV_ABS ABS_MT_POSITION_X 00000200",
			"[ 1.3] /dev/input/event2: EV_ABS ABS_MT_POSITION_Y 00000300",
			"[ 1.4] /dev/input/event2: EV_SYN SYN_REPORT 00000000",
			"[ 1.5] /dev/input/event2: EV_ABS ABS_MT_TRACKING_ID ffffffff",
		}, "\n"),
		cmdTouchDevices: `add device 2: /dev/input/event2
  name:     "touchscreen"
    ABS_MT_TOUCH_MAJOR    : value 0, min 0, max 255, fuzz 0, flat 0, resolution 0
    ABS_MT_TOOL_TYPE      : value 0, min 0, max 2, fuzz 0, flat 0, resolution 0`,
	}
	got := BuildTouchTest(sh)

	if got.MaxTouchPoints == nil || *got.MaxTouchPoints != 10 {
		t.Errorf("MaxTouchPoints = %v, want 10", got.MaxTouchPoints)
	}
	if len(got.RawEvents) != 5 {
		t.Errorf("Expected 5 raw events, got %d", len(got.RawEvents))
	}
	if got.PointsDetected != 1 {
		t.Errorf("PointsDetected = %d, want 1", got.PointsDetected)
	}
	if got.TouchMajor == nil || !strings.Contains(*got.TouchMajor, "max 255") {
		t.Errorf("TouchMajor = %v", got.TouchMajor)
	}
	if got.ToolType == nil || !strings.Contains(*got.ToolType, "max 2") {
		t.Errorf("ToolType = %v", got.ToolType)
	}
}

func TestBuildTouchTestNoDevice(t *testing.T) {
	got := BuildTouchTest(MapShell{})
	if got.PointsDetected != 0 || got.MaxTouchPoints != nil {
		t.Errorf("Expected nothing detected, got %+v", got)
	}
	if got.RawEvents == nil {
		t.Error("Expected non-nil raw events")
	}
}

func TestParseSlotCount(t *testing.T) {
	tests := []struct {
		line string
		want *int
	}{
		{"ABS_MT_SLOT : value 0, min 0, max 9, fuzz 0", ptr(10)},
		{"ABS_MT_SLOT : value 0, min 0, max 4", ptr(5)},
		{"ABS_MT_SLOT : value 0", nil},
		{"ABS_MT_SLOT : max x", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseSlotCount(tt.line)); diff != "" {
			t.Errorf("parseSlotCount(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}
