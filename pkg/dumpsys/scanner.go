package dumpsys

import "strings"

// Tokens that Android tools print in place of a missing value.
const (
	sentinelNull    = "null"
	sentinelUnknown = "unknown"
)

// Normalize trims raw and reports whether anything meaningful is left.
// Empty strings and the sentinels "null" and "unknown" (case-sensitive) are absent.
func Normalize(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" || v == sentinelNull || v == sentinelUnknown {
		return "", false
	}
	return v, true
}

// Lookup scans dump for the first line whose trimmed content starts with key
// and returns the value after the first ':' or, if the line has none, after the
// first '='. A line carrying a sentinel value does not end the scan; later lines
// with the same key are still considered.
func Lookup(dump, key string) (string, bool) {
	for _, line := range Lines(dump) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, key) {
			continue
		}

		var rest string
		if i := strings.IndexByte(line, ':'); i >= 0 {
			rest = line[i+1:]
		} else if i := strings.IndexByte(line, '='); i >= 0 {
			rest = line[i+1:]
		} else {
			continue
		}

		if v, ok := Normalize(rest); ok {
			return v, true
		}
	}
	return "", false
}

// LookupBool is Lookup followed by ParseBool. The second result reports
// whether the key was present at all.
func LookupBool(dump, key string) (bool, bool) {
	v, ok := Lookup(dump, key)
	if !ok {
		return false, false
	}
	return ParseBool(v), true
}

// LookupInt is Lookup followed by ParseInt.
func LookupInt(dump, key string) (int, bool) {
	v, ok := Lookup(dump, key)
	if !ok {
		return 0, false
	}
	return ParseInt(v)
}

// LookupFloat is Lookup followed by ParseFloat.
func LookupFloat(dump, key string) (float64, bool) {
	v, ok := Lookup(dump, key)
	if !ok {
		return 0, false
	}
	return ParseFloat(v)
}
