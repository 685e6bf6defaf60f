package dumpsys

import (
	"strings"

	"adbdesk/pkg/types"
)

const (
	cmdTouchDevices = `getevent -lp | grep -A 10 'touchscreen\|touch'`
	cmdTouchSlots   = "getevent -lp | grep ABS_MT_SLOT | head -1"
	cmdTouchSample  = "timeout 0.1 getevent -lt 2>/dev/null | head -5"

	maxRawEvents = 5
)

// BuildTouchTest inspects the touchscreen input device and samples a few raw events.
func BuildTouchTest(sh Shell) types.TouchTestResult {
	res := types.TouchTestResult{RawEvents: []string{}}

	if slots, ok := sh.Query(cmdTouchSlots); ok {
		res.MaxTouchPoints = parseSlotCount(slots)
	}

	if sample, ok := sh.Query(cmdTouchSample); ok {
		for _, line := range Lines(sample) {
			if len(res.RawEvents) == maxRawEvents {
				break
			}
			res.RawEvents = append(res.RawEvents, line)
		}
	}
	if len(res.RawEvents) > 0 {
		res.PointsDetected = 1
	}

	devices, _ := sh.Query(cmdTouchDevices)
	res.TouchMajor = optString(Lookup(devices, "ABS_MT_TOUCH_MAJOR"))
	res.ToolType = optString(Lookup(devices, "ABS_MT_TOOL_TYPE"))
	return res
}

// parseSlotCount reads "..., max 9, ..." from an ABS_MT_SLOT line. Slots are
// zero-based, so the touch point count is max+1.
func parseSlotCount(line string) *int {
	parts := strings.Split(line, "max")
	if len(parts) < 2 {
		return nil
	}
	tok, ok := Field(Fields(parts[1]), 0)
	if !ok {
		return nil
	}
	n, ok := ParseInt(strings.TrimRight(tok, ","))
	if !ok {
		return nil
	}
	n++
	return &n
}
