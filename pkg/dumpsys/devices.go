package dumpsys

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"adbdesk/pkg/types"
)

// ParseDevices parses `adb devices -l`. The "List of devices attached" header
// and daemon start-up notices ("* daemon ...") are ignored wherever they appear.
//
//	emulator-5554 device product:sdk_gphone64 model:sdk_gphone64 device:emu64 transport_id:1
func ParseDevices(out string) []types.Device {
	devices := []types.Device{}
	for _, line := range Lines(out) {
		if strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "* ") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := Fields(line)
		if len(fields) < 2 {
			continue
		}

		d := types.Device{Serial: fields[0], State: fields[1]}
		for _, part := range fields[2:] {
			key, value, found := strings.Cut(part, ":")
			if !found {
				continue
			}
			v := value
			switch key {
			case "model":
				d.Model = &v
			case "product":
				d.Product = &v
			case "device":
				d.Device = &v
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// ParseTrackDevices parses one `adb track-devices` payload: serial<TAB>state lines.
func ParseTrackDevices(payload string) []types.Device {
	devices := []types.Device{}
	for _, line := range Lines(payload) {
		serial, state, found := strings.Cut(line, "\t")
		if !found || serial == "" {
			continue
		}
		devices = append(devices, types.Device{Serial: serial, State: strings.TrimSpace(state)})
	}
	return devices
}

// ReadTrackFrame reads one length-prefixed frame from a track-devices stream.
// The prefix is four hex digits giving the payload length.
func ReadTrackFrame(r io.Reader) (string, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return "", err
	}
	n, err := strconv.ParseUint(string(prefix[:]), 16, 16)
	if err != nil {
		return "", fmt.Errorf("invalid track-devices length %q: %w", prefix[:], err)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", err
	}
	return string(payload), nil
}
