package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"adbdesk/pkg/adb"
	"adbdesk/pkg/types"
)

// GetDevices lists attached devices with their labels, pinned device first,
// then most recently used.
func (a *App) GetDevices() ([]types.DeviceView, error) {
	devices, err := a.client.Devices(a.opCtx())
	if err != nil {
		LogError("device").Err(err).Msg("Failed to list devices")
		return nil, err
	}
	return a.deviceViews(devices), nil
}

func (a *App) deviceViews(devices []types.Device) []types.DeviceView {
	labels := make(map[string]types.DeviceMetadata)
	if list, err := a.store.List(); err == nil {
		for _, m := range list {
			labels[m.Serial] = m
		}
	} else {
		LogWarn("device").Err(err).Msg("Device labels unavailable")
	}

	pinned := a.settings.PinnedSerial()
	lastActive := a.settings.AllLastActive()

	views := make([]types.DeviceView, 0, len(devices))
	for _, d := range devices {
		v := types.DeviceView{
			Device:     d,
			LastActive: lastActive[d.Serial],
			IsPinned:   pinned != "" && d.Serial == pinned,
		}
		if m, ok := labels[d.Serial]; ok {
			v.Label, v.Icon, v.Color = m.Label, m.Icon, m.Color
		}
		views = append(views, v)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].IsPinned != views[j].IsPinned {
			return views[i].IsPinned
		}
		if views[i].LastActive != views[j].LastActive {
			return views[i].LastActive > views[j].LastActive
		}
		return views[i].Serial < views[j].Serial
	})
	return views
}

// onDevicesChanged receives settled track-devices frames. The frame only
// carries serial and state, so the full list is fetched again; the frame is
// the fallback when that fails.
func (a *App) onDevicesChanged(frame []types.Device) {
	devices, err := a.client.Devices(a.opCtx())
	if err != nil {
		LogWarn("monitor").Err(err).Msg("devices -l failed, using track-devices frame")
		devices = frame
	}

	now := time.Now()
	for _, d := range devices {
		if d.State != "device" {
			continue
		}
		model := ""
		if d.Model != nil {
			model = *d.Model
		}
		if err := a.store.RecordSeen(d.Serial, model, now); err != nil {
			LogWarn("monitor").Err(err).Str("serial", d.Serial).Msg("Failed to record device")
		}
	}

	MonitorLog().Int("count", len(devices)).Msg("Devices changed")
	a.events.Emit(EventDevicesChanged, a.deviceViews(devices))
}

// GetDeviceInfo returns the device's hardware and software identity
func (a *App) GetDeviceInfo(deviceId string) (types.DeviceProperties, error) {
	timer := StartOperation("device", "get_device_info").AddDetail("deviceId", deviceId)
	props, err := a.client.DeviceProperties(a.opCtx(), deviceId)
	timer.Finish(err)
	if err == nil {
		a.updateLastActive(deviceId)
	}
	return props, err
}

// AdbPair pairs a device using the given address and code
func (a *App) AdbPair(address string, code string) (string, error) {
	if address == "" || code == "" {
		return "", fmt.Errorf("address and pairing code are required")
	}
	out, err := a.client.Pair(a.opCtx(), address, code)
	LogUserAction(ActionDevicePair, address, map[string]interface{}{"success": err == nil})
	return out, err
}

// AdbConnect connects to a device using the given address
func (a *App) AdbConnect(address string) (string, error) {
	timer := StartOperation("device", "adb_connect").AddDetail("address", address)

	address = strings.TrimSpace(address)
	if address == "" {
		timer.EndWithError(fmt.Errorf("address is required"))
		return "", fmt.Errorf("address is required")
	}

	out, err := a.client.Connect(a.opCtx(), address)
	if err != nil {
		timer.EndWithError(err)
		LogUserAction(ActionDeviceConnect, address, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return out, err
	}

	timer.End()
	LogUserAction(ActionDeviceConnect, address, map[string]interface{}{
		"success": true,
		"output":  out,
	})
	return out, nil
}

// RestartAdbServer kills and restarts the ADB server. Mirroring sessions
// die with the server, so they are stopped first.
func (a *App) RestartAdbServer() (string, error) {
	a.Log("Restarting ADB server, stopping mirroring sessions...")
	a.mirror.StopAll()

	err := a.client.RestartServer(a.opCtx())
	LogUserAction(ActionServerRestart, "", map[string]interface{}{"success": err == nil})
	if err != nil {
		return "", err
	}
	return "ADB server restarted successfully", nil
}

// ========================================
// 设备标签 (sqlite)
// ========================================

// GetDeviceMetadata returns an empty record for unlabelled devices.
func (a *App) GetDeviceMetadata(serial string) (types.DeviceMetadata, error) {
	if err := adb.ValidateDeviceID(serial); err != nil {
		return types.DeviceMetadata{}, err
	}
	m, err := a.store.Get(serial)
	if errors.Is(err, ErrMetadataNotFound) {
		return types.DeviceMetadata{Serial: serial}, nil
	}
	return m, err
}

func (a *App) ListDeviceMetadata() ([]types.DeviceMetadata, error) {
	return a.store.List()
}

func (a *App) SetDeviceMetadata(m types.DeviceMetadata) (types.DeviceMetadata, error) {
	saved, err := a.store.Put(m)
	if err != nil {
		return types.DeviceMetadata{}, err
	}
	LogUserAction(ActionDeviceLabel, m.Serial, map[string]interface{}{
		"label": m.Label,
		"icon":  m.Icon,
		"color": m.Color,
	})
	return saved, nil
}

func (a *App) DeleteDeviceMetadata(serial string) error {
	if err := a.store.Delete(serial); err != nil {
		return err
	}
	DeviceLog().Str("serial", serial).Msg("Device label removed")
	return nil
}

// GetKnownDevices lists every device seen while the monitor was running.
func (a *App) GetKnownDevices() ([]types.KnownDevice, error) {
	return a.store.KnownDevices()
}

// ForgetDevice drops a device from history along with its label.
func (a *App) ForgetDevice(serial string) error {
	if err := adb.ValidateDeviceID(serial); err != nil {
		return err
	}
	if err := a.store.Forget(serial); err != nil {
		return err
	}
	DeviceLog().Str("serial", serial).Msg("Device forgotten")
	return nil
}

// TogglePinDevice pins/unpins a device by its serial
func (a *App) TogglePinDevice(serial string) bool {
	pinned := a.settings.PinnedSerial() != serial
	if pinned {
		a.settings.SetPinnedSerial(serial)
	} else {
		a.settings.SetPinnedSerial("")
	}
	LogUserAction(ActionDevicePin, serial, map[string]interface{}{"pinned": pinned})
	a.saveSettings()
	return pinned
}

// updateLastActive updates the last active timestamp for a device
func (a *App) updateLastActive(serial string) {
	a.settings.Touch(serial, time.Now())
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		LogError("settings").Err(err).Msg("Failed to save settings")
	}
}

// ========================================
// Device Monitor
// ========================================

// StartDeviceMonitor starts monitoring device connections using adb track-devices
// It emits "devices-changed" events when devices connect/disconnect
func (a *App) StartDeviceMonitor() {
	a.monitor.Start(a.opCtx())
}

// StopDeviceMonitor stops the device monitor
func (a *App) StopDeviceMonitor() {
	a.monitor.Stop()
}

func (a *App) IsDeviceMonitorRunning() bool {
	return a.monitor.Running()
}
