package dumpsys

import "adbdesk/pkg/types"

const (
	cmdDumpsysBattery   = "dumpsys battery"
	cmdCurrentNow       = "cat /sys/class/power_supply/battery/current_now"
	cmdChargeFullDesign = "cat /sys/class/power_supply/battery/charge_full_design"
	cmdChargeCounter    = "cat /sys/class/power_supply/battery/charge_counter"
)

// Plugged sources
const (
	PluggedACUSB    = "AC + USB"
	PluggedAC       = "AC"
	PluggedUSB      = "USB"
	PluggedWireless = "Wireless"
	PluggedNone     = "Not Plugged"
)

// BuildBattery reads `dumpsys battery` plus the power_supply sysfs nodes.
func BuildBattery(sh Shell) types.BatteryState {
	dump, _ := sh.Query(cmdDumpsysBattery)
	st := BatteryFromDump(dump)

	if v, ok := sh.Query(cmdCurrentNow); ok {
		if n, ok := ParseInt(v); ok {
			st.Current = some(MicroToMilli(n), true)
		}
	}
	if v, ok := sh.Query(cmdChargeFullDesign); ok {
		if n, ok := ParseInt(v); ok {
			st.Capacity = some(MicroToMilli(n), true)
		}
	}
	if v, ok := sh.Query(cmdChargeCounter); ok {
		st.ChargeCounter = optInt64(ParseInt64(v))
	}
	return st
}

// BatteryFromDump extracts every field available from `dumpsys battery` alone.
func BatteryFromDump(dump string) types.BatteryState {
	var st types.BatteryState

	level, hasLevel := LookupInt(dump, "level")
	st.Level = some(level, hasLevel)
	if hasLevel {
		st.FullCharge = some(level >= 100, true)
	}

	status, _ := Lookup(dump, "status")
	st.Status = DecodeBatteryStatus(status)
	health, _ := Lookup(dump, "health")
	st.Health = DecodeBatteryHealth(health)

	if t, ok := LookupFloat(dump, "temperature"); ok {
		st.Temperature = some(DeciToCelsius(t), true)
	}
	st.Voltage = optInt(LookupInt(dump, "voltage"))
	st.Technology = optString(Lookup(dump, "technology"))
	st.Plugged = pluggedSource(dump)

	if c, ok := LookupInt(dump, "Max charging current"); ok {
		st.MaxChargingCurrent = some(MicroToMilli(c), true)
	}
	if v, ok := LookupInt(dump, "Max charging voltage"); ok {
		st.MaxChargingVoltage = some(MicroToMilli(v), true)
	}
	return st
}

func pluggedSource(dump string) string {
	ac, _ := LookupBool(dump, "AC powered")
	usb, _ := LookupBool(dump, "USB powered")
	wireless, _ := LookupBool(dump, "Wireless powered")

	switch {
	case ac && usb:
		return PluggedACUSB
	case ac:
		return PluggedAC
	case usb:
		return PluggedUSB
	case wireless:
		return PluggedWireless
	default:
		return PluggedNone
	}
}
