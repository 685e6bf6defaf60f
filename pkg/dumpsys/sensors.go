package dumpsys

import (
	"strings"

	"adbdesk/pkg/types"
)

const (
	cmdSensorList    = "dumpsys sensorservice | grep -E '^0x' | head -30"
	cmdSensorService = "dumpsys sensorservice"
)

// Keywords checked, in order, when the structured listing yields nothing.
var sensorKeywords = []struct {
	keyword string
	name    string
}{
	{"accelerometer", "Accelerometer"},
	{"gyroscope", "Gyroscope"},
	{"magnetometer", "Magnetometer"},
	{"barometer", "Barometer"},
	{"proximity", "Proximity"},
	{"light", "Light"},
	{"gravity", "Gravity"},
	{"rotation", "Rotation Vector"},
	{"step", "Step Counter"},
}

// BuildSensors tries the structured sensor listing first and falls back to a
// keyword scan of the full sensorservice dump.
func BuildSensors(sh Shell) []types.SensorRecord {
	listing, _ := sh.Query(cmdSensorList)
	if sensors := ParseSensorList(listing); len(sensors) > 0 {
		return sensors
	}
	dump, _ := sh.Query(cmdSensorService)
	return DetectSensors(dump)
}

// ParseSensorList parses the `0x...| name | vendor | ...` rows of sensorservice.
func ParseSensorList(listing string) []types.SensorRecord {
	sensors := []types.SensorRecord{}
	for _, line := range Lines(listing) {
		cols := Columns(line, "|")
		if len(cols) < 2 || cols[1] == "" {
			continue
		}
		rec := types.SensorRecord{
			Name:   cols[1],
			Status: types.SensorActive,
		}
		if vendor, ok := Field(cols, 2); ok {
			rec.Vendor = &vendor
		}
		sensors = append(sensors, rec)
	}
	return sensors
}

// DetectSensors reports a lower-confidence record for every known sensor
// keyword found anywhere in dump.
func DetectSensors(dump string) []types.SensorRecord {
	sensors := []types.SensorRecord{}
	lower := strings.ToLower(dump)
	for _, k := range sensorKeywords {
		if !strings.Contains(lower, k.keyword) {
			continue
		}
		keyword := k.keyword
		sensors = append(sensors, types.SensorRecord{
			Name:       k.name,
			SensorType: &keyword,
			Status:     types.SensorDetected,
		})
	}
	return sensors
}
