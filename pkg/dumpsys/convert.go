package dumpsys

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseBool accepts "true" in any case and "1". Everything else is false.
func ParseBool(s string) bool {
	return strings.EqualFold(s, "true") || s == "1"
}

// ParseInt parses a base-10 integer.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseInt64 parses a base-10 64-bit integer.
func ParseInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseUint64 parses a base-10 unsigned integer.
func ParseUint64(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFloat parses a decimal number. NaN and infinities count as absent,
// since encoding/json cannot carry them.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MicroToMilli scales a micro-unit reading (µA, µV, µAh) to milli-units.
func MicroToMilli(v int) int {
	return v / 1000
}

// DeciToCelsius converts a battery temperature in tenths of a degree.
func DeciToCelsius(deci float64) float64 {
	return deci / 10.0
}

// FormatCelsius renders a deci-Celsius reading as "35.5°C".
func FormatCelsius(deci float64) string {
	return fmt.Sprintf("%.1f°C", DeciToCelsius(deci))
}

// FormatKB renders a kilobyte count as MB, or as GB above 1024 MB.
func FormatKB(kb int64) string {
	mb := float64(kb) / 1024
	if mb > 1024 {
		return fmt.Sprintf("%.1f GB", mb/1024)
	}
	return fmt.Sprintf("%.0f MB", mb)
}
