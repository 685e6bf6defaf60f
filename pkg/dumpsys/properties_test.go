package dumpsys

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"adbdesk/pkg/types"
)

const pixelGetprop = `[gsm.version.baseband]: [g5300g-230323-230523-B-10184318]
[ro.board.platform]: [gs201]
[ro.boot.serialno]: [28161FDH2001L7]
[ro.bootloader]: [unknown]
[ro.build.fingerprint]: [google/panther/panther:14/UQ1A.240205.004/11269751:user/release-keys]
[ro.build.id]: [UQ1A.240205.004]
[ro.build.tags]: [release-keys]
[ro.build.type]: [user]
[ro.build.version.release]: [14]
[ro.build.version.sdk]: [34]
[ro.build.version.security_patch]: [2024-02-05]
[ro.hardware]: [panther]
[ro.product.board]: [panther]
[ro.product.brand]: [google]
[ro.product.cpu.abi]: [arm64-v8a]
[ro.product.device]: [panther]
[ro.product.manufacturer]: [Google]
[ro.product.model]: [Pixel 7]
[ro.serialno]: []
[persist.sys.locale]: [en-US]
`

const pixelDiskFree = `Filesystem      1K-blocks     Used Available Use% Mounted on
/dev/block/dm-5 115249236 40123456  75000000  35% /data`

const pixelProcMeminfo = `MemTotal:        7919072 kB
MemFree:          234560 kB
MemAvailable:    4123456 kB
Buffers:          123456 kB`

func TestParseGetprop(t *testing.T) {
	props := ParseGetprop(pixelGetprop + "not a property line\n[broken]\n")

	if v, ok := props.Get("ro.product.model"); !ok || v != "Pixel 7" {
		t.Errorf("ro.product.model = (%q, %v)", v, ok)
	}
	if _, ok := props.Get("ro.serialno"); ok {
		t.Error("Expected empty property to be absent")
	}
	if _, ok := props.Get("ro.bootloader"); ok {
		t.Error("Expected sentinel property to be absent")
	}
	if _, ok := props["broken"]; ok {
		t.Error("Expected malformed line to be skipped")
	}
}

func TestBuildDeviceProperties(t *testing.T) {
	sh := MapShell{
		cmdGetprop:                              pixelGetprop,
		cmdKernelVersion:                        "5.10.177-android13-4-00003-g1f9b1b1b1b1b-ab10813727\n",
		cmdWmSize:                               "Physical size: 1080x2400",
		cmdWmDensity:                            "Physical density: 420",
		cmdDiskFree:                             pixelDiskFree,
		cmdMeminfo:                              pixelProcMeminfo,
		cmdDumpsysBattery:                       pixelDumpsysBattery,
		cmdWifiMACDev:                           "",
		"settings get secure bluetooth_address": "null",
	}
	got := BuildDeviceProperties(sh)
	want := types.DeviceProperties{
		AndroidVersion:     ptr("14"),
		SDKVersion:         ptr("34"),
		SecurityPatch:      ptr("2024-02-05"),
		BuildID:            ptr("UQ1A.240205.004"),
		BuildFingerprint:   ptr("google/panther/panther:14/UQ1A.240205.004/11269751:user/release-keys"),
		Manufacturer:       ptr("Google"),
		Brand:              ptr("google"),
		Model:              ptr("Pixel 7"),
		Device:             ptr("panther"),
		Hardware:           ptr("panther"),
		Board:              ptr("panther"),
		Platform:           ptr("gs201"),
		CPUABI:             ptr("arm64-v8a"),
		ScreenResolution:   ptr("1080x2400"),
		ScreenDensity:      ptr("420 dpi"),
		Baseband:           ptr("g5300g-230323-230523-B-10184318"),
		KernelVersion:      ptr("5.10.177-android13-4-00003-g1f9b1b1b1b1b-ab10813727"),
		BuildType:          ptr("user"),
		BuildTags:          ptr("release-keys"),
		SerialNumber:       ptr("28161FDH2001L7"),
		BatteryLevel:       ptr("85%"),
		BatteryStatus:      ptr("Charging"),
		BatteryHealth:      ptr("Good"),
		BatteryTemperature: ptr("35.5°C"),
		InternalStorage:    ptr("109.9 GB"),
		AvailableStorage:   ptr("71.5 GB"),
		TotalRAM:           ptr("7.6 GB"),
		AvailableRAM:       ptr("3.9 GB"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildDeviceProperties mismatch (-want +got):\n%s", diff)
	}
}

func TestDeviceMACFallbacks(t *testing.T) {
	sh := MapShell{
		cmdGetprop:                              "[ro.boot.wifimacaddr]: [02:00:00:44:55:66]\n[ro.boot.btmacaddr]: [null]",
		"settings get secure bluetooth_address": "22:22:22:33:33:33",
	}
	got := BuildDeviceProperties(sh)

	if got.WifiMAC == nil || *got.WifiMAC != "02:00:00:44:55:66" {
		t.Errorf("WifiMAC = %v", got.WifiMAC)
	}
	if got.BluetoothMAC == nil || *got.BluetoothMAC != "22:22:22:33:33:33" {
		t.Errorf("BluetoothMAC = %v", got.BluetoothMAC)
	}
	if got.SerialNumber != nil {
		t.Errorf("Expected no serial, got %q", *got.SerialNumber)
	}
	if got.InternalStorage != nil || got.TotalRAM != nil || got.BatteryLevel != nil {
		t.Error("Expected storage, memory and battery fields absent")
	}
}

func TestDeviceBatteryKeepsVendorLabels(t *testing.T) {
	got := BuildDeviceProperties(MapShell{
		cmdDumpsysBattery: "status: Discharging\nhealth: 9\nlevel: 40",
	})
	if got.BatteryStatus == nil || *got.BatteryStatus != "Discharging" {
		t.Errorf("BatteryStatus = %v", got.BatteryStatus)
	}
	if got.BatteryHealth == nil || *got.BatteryHealth != "Unknown" {
		t.Errorf("BatteryHealth = %v", got.BatteryHealth)
	}
	if got.BatteryTemperature != nil {
		t.Errorf("Expected no temperature, got %q", *got.BatteryTemperature)
	}
}

func TestParseDiskFree(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		wantTotal int64
		wantAvail int64
		wantOK    bool
	}{
		{"single row", pixelDiskFree, 115249236, 75000000, true},
		{
			name:      "wrapped filesystem name",
			out:       "Filesystem 1K-blocks Used Available Use% Mounted on\n/dev/block/bootdevice/by-name/userdata\n 52000000 12000000 40000000 23% /data",
			wantTotal: 52000000,
			wantAvail: 40000000,
			wantOK:    true,
		},
		{"header only", "Filesystem 1K-blocks Used Available Use% Mounted on", 0, 0, false},
		{"not numeric", "Filesystem\n/dev/x a b c 1% /data", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, avail, ok := ParseDiskFree(tt.out)
			if total != tt.wantTotal || avail != tt.wantAvail || ok != tt.wantOK {
				t.Errorf("ParseDiskFree = (%d, %d, %v), want (%d, %d, %v)",
					total, avail, ok, tt.wantTotal, tt.wantAvail, tt.wantOK)
			}
		})
	}
}
