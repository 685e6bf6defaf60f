package main

import (
	"context"
	"time"

	"adbdesk/pkg/types"
)

// scrcpy installs through brew or winget can take minutes.
const scrcpyInstallTimeout = 10 * time.Minute

// StartScrcpy starts mirroring deviceId in a separate scrcpy window. The
// window closing emits "scrcpy-response".
func (a *App) StartScrcpy(deviceId string) (string, error) {
	timer := StartOperation("mirror", "start").AddDetail("deviceId", deviceId)
	msg, err := a.mirror.Start(deviceId)
	timer.Finish(err)
	LogUserAction(ActionMirrorStart, deviceId, map[string]interface{}{"success": err == nil})
	if err == nil {
		a.updateLastActive(deviceId)
	}
	return msg, err
}

// StopScrcpy kills every mirroring session of deviceId
func (a *App) StopScrcpy(deviceId string) error {
	err := a.mirror.Stop(deviceId)
	LogUserAction(ActionMirrorStop, deviceId, map[string]interface{}{"success": err == nil})
	if err == nil {
		MirrorLog().Str("deviceId", deviceId).Msg("Mirroring stopped")
	}
	return err
}

// GetMirrorSessions lists running sessions, oldest first.
func (a *App) GetMirrorSessions() []types.MirrorSession {
	return a.mirror.Sessions()
}

// CheckScrcpy reports whether the resolved scrcpy runs.
func (a *App) CheckScrcpy() bool {
	return a.mirror.Check(a.opCtx())
}

// InstallScrcpy installs scrcpy with the platform package manager.
func (a *App) InstallScrcpy() (string, error) {
	ctx, cancel := context.WithTimeout(a.opCtx(), scrcpyInstallTimeout)
	defer cancel()

	timer := StartOperation("mirror", "install_scrcpy")
	msg, err := a.mirror.Install(ctx)
	timer.Finish(err)
	LogUserAction(ActionScrcpyInstall, "", map[string]interface{}{"success": err == nil})
	return msg, err
}
