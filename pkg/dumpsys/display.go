package dumpsys

import (
	"fmt"
	"strings"

	"adbdesk/pkg/types"
)

const (
	cmdWmSize          = "wm size"
	cmdWmDensity       = "wm density"
	cmdDisplayRefresh  = "dumpsys display | grep -E 'refresh|mDefaultModeId|supported modes' | head -10"
	cmdRenderFrameRate = "dumpsys display | grep 'renderFrameRate' | head -1"
	cmdDisplayHDR      = "dumpsys display | grep -i hdr | head -5"
	cmdDisplayModes    = "dumpsys display | grep -A 20 'mSupportedModes' | head -15"

	maxSupportedModes = 5
)

var hdrMarkers = []string{"HDR10", "HLG", "DOLBY"}

// BuildDisplay reads window manager, display service and brightness settings.
func BuildDisplay(sh Shell) types.DisplayState {
	st := types.DisplayState{
		Resolution:     readResolution(sh),
		Density:        readDensity(sh),
		SupportedModes: []string{},
	}

	displayDump, _ := sh.Query(cmdDisplayRefresh)
	st.RefreshRate = firstOf(
		func() (string, bool) {
			line, ok := sh.Query(cmdRenderFrameRate)
			if !ok {
				return "", false
			}
			parts := strings.Split(line, "=")
			if len(parts) < 2 {
				return "", false
			}
			return fmt.Sprintf("%s Hz", strings.TrimSpace(parts[1])), true
		},
		func() (string, bool) {
			r, ok := Lookup(displayDump, "refreshRate")
			if !ok {
				return "", false
			}
			return fmt.Sprintf("%s Hz", r), true
		},
	)

	if hdr, ok := sh.Query(cmdDisplayHDR); ok {
		for _, marker := range hdrMarkers {
			if strings.Contains(hdr, marker) {
				first := FirstLine(hdr)
				st.HDRCapabilities = &first
				break
			}
		}
	}

	if modes, ok := sh.Query(cmdDisplayModes); ok {
		for _, line := range Lines(modes) {
			if len(st.SupportedModes) == maxSupportedModes {
				break
			}
			if strings.Contains(line, "x") && strings.Contains(line, "@") {
				st.SupportedModes = append(st.SupportedModes, strings.TrimSpace(line))
			}
		}
	}

	if v, ok := setting(sh, "system", "screen_brightness"); ok {
		st.Brightness = optInt(ParseInt(v))
	}
	if v, ok := setting(sh, "system", "screen_brightness_mode"); ok {
		st.AdaptiveBrightness = some(v == "1", true)
	}
	return st
}

func readResolution(sh Shell) *string {
	out, ok := sh.Query(cmdWmSize)
	if !ok {
		return nil
	}
	v := strings.TrimSpace(strings.ReplaceAll(out, "Physical size: ", ""))
	return &v
}

func readDensity(sh Shell) *string {
	out, ok := sh.Query(cmdWmDensity)
	if !ok {
		return nil
	}
	v := strings.TrimSpace(strings.ReplaceAll(out, "Physical density: ", "")) + " dpi"
	return &v
}
