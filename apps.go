package main

import (
	"adbdesk/pkg/types"
)

// ListPackages returns installed packages sorted by id; system packages only
// when includeSystem is set.
func (a *App) ListPackages(deviceId string, includeSystem bool) ([]types.PackageSummary, error) {
	timer := StartOperation("apps", "list_packages").
		AddDetail("deviceId", deviceId).
		AddDetail("includeSystem", includeSystem)
	pkgs, err := a.client.ListPackages(a.opCtx(), deviceId, includeSystem)
	if err != nil {
		timer.EndWithError(err)
		return nil, err
	}
	timer.AddDetail("count", len(pkgs)).End()
	return pkgs, nil
}

// GetAppInfo returns version, SDK range, permissions and size of a package
func (a *App) GetAppInfo(deviceId, packageName string) (types.PackageDetails, error) {
	return a.client.PackageDetails(a.opCtx(), deviceId, packageName)
}

// InstallAPK installs an APK to the specified device
func (a *App) InstallAPK(deviceId string, path string) (string, error) {
	a.Log("Installing APK %s to device %s", path, deviceId)
	timer := StartOperation("apps", "install_apk").AddDetail("path", path)
	msg, err := a.client.Install(a.opCtx(), deviceId, path)
	timer.Finish(err)
	LogUserAction(ActionAppInstall, deviceId, map[string]interface{}{"path": path, "success": err == nil})
	if err == nil {
		a.updateLastActive(deviceId)
	}
	return msg, err
}

// UninstallApp uninstalls the specified package
func (a *App) UninstallApp(deviceId, packageName string) (string, error) {
	msg, err := a.client.Uninstall(a.opCtx(), deviceId, packageName)
	LogUserAction(ActionAppUninstall, deviceId, map[string]interface{}{"package": packageName, "success": err == nil})
	return msg, err
}

func (a *App) EnableApp(deviceId, packageName string) error {
	err := a.client.Enable(a.opCtx(), deviceId, packageName)
	LogUserAction(ActionAppEnable, deviceId, map[string]interface{}{"package": packageName, "success": err == nil})
	return err
}

func (a *App) DisableApp(deviceId, packageName string) error {
	err := a.client.Disable(a.opCtx(), deviceId, packageName)
	LogUserAction(ActionAppDisable, deviceId, map[string]interface{}{"package": packageName, "success": err == nil})
	return err
}

// ClearAppData clears the data of the specified package
func (a *App) ClearAppData(deviceId, packageName string) error {
	err := a.client.Clear(a.opCtx(), deviceId, packageName)
	LogUserAction(ActionAppClear, deviceId, map[string]interface{}{"package": packageName, "success": err == nil})
	return err
}

// ForceStopApp force stops the specified package
func (a *App) ForceStopApp(deviceId, packageName string) error {
	err := a.client.ForceStop(a.opCtx(), deviceId, packageName)
	LogUserAction(ActionAppStop, deviceId, map[string]interface{}{"package": packageName, "success": err == nil})
	return err
}

// StartApp launches the package's launcher activity
func (a *App) StartApp(deviceId, packageName string) error {
	err := a.client.Launch(a.opCtx(), deviceId, packageName)
	LogUserAction(ActionAppLaunch, deviceId, map[string]interface{}{"package": packageName, "success": err == nil})
	return err
}
