package dumpsys

import (
	"regexp"
	"strings"

	"adbdesk/pkg/types"
)

// threadtimePattern matches the default logcat format:
// "01-04 12:34:56.789  1234  5678 D Tag     : message"
var threadtimePattern = regexp.MustCompile(`^(\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3})\s+(\d+)\s+(\d+)\s+([VDIWEFS])\s+(.*?)\s*:\s?(.*)$`)

// timePattern matches `logcat -v time`: "01-04 12:34:56.789 D/Tag( 1234): message"
var timePattern = regexp.MustCompile(`^(\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3})\s+([VDIWEFS])/([^(]+)\(\s*(\d+)\):\s?(.*)$`)

// ParseLogcat splits logcat output into entries. Lines in neither known format
// (buffer separators, wrapped stack traces) keep only Raw and Message.
func ParseLogcat(out string) []types.LogEntry {
	entries := []types.LogEntry{}
	for _, line := range Lines(out) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, ParseLogcatLine(line))
	}
	return entries
}

// ParseLogcatLine parses a single logcat line.
func ParseLogcatLine(line string) types.LogEntry {
	if m := threadtimePattern.FindStringSubmatch(line); m != nil {
		return types.LogEntry{
			Raw:       line,
			Timestamp: m[1],
			PID:       m[2],
			TID:       m[3],
			Level:     m[4],
			Tag:       strings.TrimSpace(m[5]),
			Message:   m[6],
		}
	}
	if m := timePattern.FindStringSubmatch(line); m != nil {
		return types.LogEntry{
			Raw:       line,
			Timestamp: m[1],
			Level:     m[2],
			Tag:       strings.TrimSpace(m[3]),
			PID:       m[4],
			Message:   m[5],
		}
	}
	return types.LogEntry{Raw: line, Message: line}
}
