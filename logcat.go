package main

import (
	"strings"

	"adbdesk/pkg/types"
)

// logcat priorities, lowest first
const logLevels = "VDIWEF"

func levelRank(level string) int {
	if level == "" {
		return -1
	}
	return strings.Index(logLevels, strings.ToUpper(level[:1]))
}

// GetLogcat returns the last 500 lines as printed by adb.
func (a *App) GetLogcat(deviceId string) (string, error) {
	return a.client.Logcat(a.opCtx(), deviceId)
}

// GetLogEntries returns parsed logcat entries at or above minLevel whose raw
// line contains filter (case-insensitive). An empty minLevel uses the
// defaultLogLevel preference. Lines that are not in threadtime format carry
// no level and are only kept at level V.
func (a *App) GetLogEntries(deviceId, minLevel, filter string) ([]types.LogEntry, error) {
	entries, err := a.client.LogEntries(a.opCtx(), deviceId)
	if err != nil {
		return nil, err
	}
	if minLevel == "" {
		minLevel = a.settings.Preferences().DefaultLogLevel
	}
	return filterLogEntries(entries, minLevel, filter), nil
}

func filterLogEntries(entries []types.LogEntry, minLevel, filter string) []types.LogEntry {
	min := levelRank(minLevel)
	if min < 0 {
		min = 0
	}
	filter = strings.ToLower(filter)

	out := make([]types.LogEntry, 0, len(entries))
	for _, e := range entries {
		rank := levelRank(e.Level)
		if rank < min && !(rank < 0 && min == 0) {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(e.Raw), filter) {
			continue
		}
		out = append(out, e)
	}
	return out
}
