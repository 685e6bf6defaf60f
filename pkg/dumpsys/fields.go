package dumpsys

import "strings"

// Lines splits tool output into lines, dropping the carriage returns that adb
// adds on some hosts.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Fields splits a line on runs of whitespace.
func Fields(line string) []string {
	return strings.Fields(line)
}

// Columns splits a line on sep and trims every column.
func Columns(line, sep string) []string {
	cols := strings.Split(line, sep)
	for i, c := range cols {
		cols[i] = strings.TrimSpace(c)
	}
	return cols
}

// Field returns fields[i] if it exists.
func Field(fields []string, i int) (string, bool) {
	if i < 0 || i >= len(fields) {
		return "", false
	}
	return fields[i], true
}

// After returns the trimmed text following the first occurrence of marker.
func After(line, marker string) (string, bool) {
	_, rest, found := strings.Cut(line, marker)
	if !found {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// FirstLine returns the first line of text.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSuffix(line, "\r")
}

func some[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

func optString(v string, ok bool) *string { return some(v, ok) }

func optInt(v int, ok bool) *int { return some(v, ok) }

func optInt64(v int64, ok bool) *int64 { return some(v, ok) }

func optUint64(v uint64, ok bool) *uint64 { return some(v, ok) }
