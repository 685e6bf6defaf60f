// Package dumpsys turns loosely structured Android tool output (dumpsys, getprop,
// pm, ls -l, adb devices, logcat) into typed records.
//
// Parsing is best-effort and field-independent: a field that cannot be extracted
// is left absent and never aborts its siblings. Sentinel strings such as "null"
// and "unknown" are converted to absence in exactly one place, Normalize.
package dumpsys
