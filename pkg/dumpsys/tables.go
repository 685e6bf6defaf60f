package dumpsys

import "strings"

const labelUnknown = "Unknown"

// BatteryManager.BATTERY_STATUS_*
var batteryStatusLabels = map[int]string{
	1: "Unknown",
	2: "Charging",
	3: "Discharging",
	4: "Not Charging",
	5: "Full",
}

// BatteryManager.BATTERY_HEALTH_*
var batteryHealthLabels = map[int]string{
	1: "Unknown",
	2: "Good",
	3: "Overheat",
	4: "Dead",
	5: "Over Voltage",
	6: "Failure",
	7: "Cold",
}

// TelephonyManager.NETWORK_TYPE_*; 16 and 17 are intentionally absent.
var networkTypeLabels = map[string]string{
	"0":  "Unknown",
	"1":  "GPRS",
	"2":  "EDGE",
	"3":  "UMTS",
	"4":  "CDMA",
	"5":  "EVDO_0",
	"6":  "EVDO_A",
	"7":  "1xRTT",
	"8":  "HSDPA",
	"9":  "HSUPA",
	"10": "HSPA",
	"11": "IDEN",
	"12": "EVDO_B",
	"13": "LTE",
	"14": "EHRPD",
	"15": "HSPAP",
	"18": "GSM",
	"19": "TD-SCDMA",
	"20": "5G NR",
}

// BatteryStatusLabel maps a status code to its label; unknown codes are "Unknown".
func BatteryStatusLabel(code int) string {
	if label, ok := batteryStatusLabels[code]; ok {
		return label
	}
	return labelUnknown
}

// BatteryHealthLabel maps a health code to its label; unknown codes are "Unknown".
func BatteryHealthLabel(code int) string {
	if label, ok := batteryHealthLabels[code]; ok {
		return label
	}
	return labelUnknown
}

// DecodeBatteryStatus decodes a raw status field. Unparsable input is "Unknown".
func DecodeBatteryStatus(raw string) string {
	code, ok := ParseInt(strings.TrimSpace(raw))
	if !ok {
		return labelUnknown
	}
	return BatteryStatusLabel(code)
}

// DecodeBatteryHealth decodes a raw health field. Unparsable input is "Unknown".
func DecodeBatteryHealth(raw string) string {
	code, ok := ParseInt(strings.TrimSpace(raw))
	if !ok {
		return labelUnknown
	}
	return BatteryHealthLabel(code)
}

// DescribeBatteryStatus decodes numeric codes but keeps a non-numeric value
// (some vendors print the label directly) as it was.
func DescribeBatteryStatus(raw string) string {
	code, ok := ParseInt(strings.TrimSpace(raw))
	if !ok {
		return raw
	}
	return BatteryStatusLabel(code)
}

// DescribeBatteryHealth is the health counterpart of DescribeBatteryStatus.
func DescribeBatteryHealth(raw string) string {
	code, ok := ParseInt(strings.TrimSpace(raw))
	if !ok {
		return raw
	}
	return BatteryHealthLabel(code)
}

// NetworkTypeLabel maps a cellular network type code to its name. Codes
// outside the table are returned unchanged.
func NetworkTypeLabel(code string) string {
	if label, ok := networkTypeLabels[code]; ok {
		return label
	}
	return code
}
