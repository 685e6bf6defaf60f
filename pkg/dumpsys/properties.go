package dumpsys

import (
	"strings"

	"adbdesk/pkg/types"
)

const (
	cmdGetprop         = "getprop"
	cmdKernelVersion   = "uname -r"
	cmdDiskFree        = "df /data"
	cmdMeminfo         = "cat /proc/meminfo"
	cmdBluetoothMACDev = "cat /sys/class/bluetooth/hci0/address"
	cmdWifiMACDev      = "cat /sys/class/net/wlan0/address"
)

// Props is a parsed `getprop` listing.
type Props map[string]string

// Get returns a normalized property value.
func (p Props) Get(key string) (string, bool) {
	return Normalize(p[key])
}

func (p Props) opt(key string) *string {
	return optString(p.Get(key))
}

func (p Props) source(key string) func() (string, bool) {
	return func() (string, bool) { return p.Get(key) }
}

// ParseGetprop parses `[key]: [value]` lines.
func ParseGetprop(out string) Props {
	props := make(Props)
	for _, line := range Lines(out) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			continue
		}
		key, value, found := strings.Cut(line[1:len(line)-1], "]: [")
		if !found {
			continue
		}
		props[key] = value
	}
	return props
}

// BuildDeviceProperties assembles the identity record from getprop and a
// handful of direct reads. MAC addresses and the serial use fallback chains,
// tried in order.
func BuildDeviceProperties(sh Shell) types.DeviceProperties {
	raw, _ := sh.Query(cmdGetprop)
	p := ParseGetprop(raw)

	info := types.DeviceProperties{
		AndroidVersion:   p.opt("ro.build.version.release"),
		SDKVersion:       p.opt("ro.build.version.sdk"),
		SecurityPatch:    p.opt("ro.build.version.security_patch"),
		BuildID:          p.opt("ro.build.id"),
		BuildFingerprint: p.opt("ro.build.fingerprint"),

		Manufacturer: p.opt("ro.product.manufacturer"),
		Brand:        p.opt("ro.product.brand"),
		Model:        p.opt("ro.product.model"),
		Device:       p.opt("ro.product.device"),
		Hardware:     p.opt("ro.hardware"),
		Board:        p.opt("ro.product.board"),
		Platform:     p.opt("ro.board.platform"),
		CPUABI:       p.opt("ro.product.cpu.abi"),

		ScreenResolution: readResolution(sh),
		ScreenDensity:    readDensity(sh),

		Bootloader:    p.opt("ro.bootloader"),
		Baseband:      p.opt("gsm.version.baseband"),
		KernelVersion: optString(sh.Query(cmdKernelVersion)),
		BuildType:     p.opt("ro.build.type"),
		BuildTags:     p.opt("ro.build.tags"),
	}

	info.WifiMAC = firstOf(
		query(sh, cmdWifiMACDev),
		p.source("ro.boot.wifimacaddr"),
	)
	info.BluetoothMAC = firstOf(
		query(sh, cmdBluetoothMACDev),
		p.source("ro.boot.btmacaddr"),
		func() (string, bool) { return setting(sh, "secure", "bluetooth_address") },
	)
	info.SerialNumber = firstOf(
		p.source("ro.serialno"),
		p.source("ro.boot.serialno"),
	)

	if battery, ok := sh.Query(cmdDumpsysBattery); ok {
		readBatteryProperties(battery, &info)
	}
	if df, ok := sh.Query(cmdDiskFree); ok {
		if total, avail, ok := ParseDiskFree(df); ok {
			info.InternalStorage = some(FormatKB(total), true)
			info.AvailableStorage = some(FormatKB(avail), true)
		}
	}
	if meminfo, ok := sh.Query(cmdMeminfo); ok {
		info.TotalRAM = meminfoField(meminfo, "MemTotal")
		info.AvailableRAM = meminfoField(meminfo, "MemAvailable")
	}
	return info
}

func readBatteryProperties(dump string, info *types.DeviceProperties) {
	if level, ok := Lookup(dump, "level"); ok {
		info.BatteryLevel = some(level+"%", true)
	}
	if status, ok := Lookup(dump, "status"); ok {
		info.BatteryStatus = some(DescribeBatteryStatus(status), true)
	}
	if health, ok := Lookup(dump, "health"); ok {
		info.BatteryHealth = some(DescribeBatteryHealth(health), true)
	}
	if t, ok := LookupFloat(dump, "temperature"); ok {
		info.BatteryTemperature = some(FormatCelsius(t), true)
	}
}

// ParseDiskFree reads total and available 1K-blocks from `df` output. Columns
// are taken from the end of the last row so a filesystem name wrapped onto its
// own line does not shift them.
func ParseDiskFree(out string) (totalKB, availKB int64, ok bool) {
	var row []string
	for _, line := range Lines(out) {
		if strings.HasPrefix(line, "Filesystem") {
			continue
		}
		if f := Fields(line); len(f) > 0 {
			row = f
		}
	}
	n := len(row)
	if n < 5 {
		return 0, 0, false
	}
	totalKB, okTotal := ParseInt64(row[n-5])
	availKB, okAvail := ParseInt64(row[n-3])
	if !okTotal || !okAvail {
		return 0, 0, false
	}
	return totalKB, availKB, true
}

func meminfoField(meminfo, key string) *string {
	v, ok := Lookup(meminfo, key)
	if !ok {
		return nil
	}
	first, _ := Field(Fields(v), 0)
	kb, ok := ParseInt64(first)
	if !ok {
		return nil
	}
	s := FormatKB(kb)
	return &s
}
