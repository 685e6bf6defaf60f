package main

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"adbdesk/pkg/types"
)

// ListFiles returns a list of files in the specified directory on the device.
// Dot files are dropped unless the showHiddenFiles preference is on.
func (a *App) ListFiles(deviceId, pathStr string) ([]types.FileEntry, error) {
	if pathStr == "" {
		pathStr = "/"
	}
	entries, err := a.client.ListFiles(a.opCtx(), deviceId, pathStr)
	if err != nil {
		return nil, err
	}
	a.updateLastActive(deviceId)

	if a.settings.Preferences().ShowHiddenFiles {
		return entries, nil
	}
	visible := entries[:0]
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, ".") {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// PullFile copies a device file to localPath on the host
func (a *App) PullFile(deviceId, remotePath, localPath string) (string, error) {
	msg, err := a.client.Pull(a.opCtx(), deviceId, remotePath, localPath)
	LogUserAction(ActionFilePull, deviceId, map[string]interface{}{
		"remote":  remotePath,
		"local":   localPath,
		"success": err == nil,
	})
	return msg, err
}

// DownloadFile pulls a file from the device to a user-selected local path.
// An empty result means the dialog was cancelled.
func (a *App) DownloadFile(deviceId, remotePath string) (string, error) {
	defaultDir, _ := os.UserHomeDir()
	downloadsDir := filepath.Join(defaultDir, "Downloads")
	if _, err := os.Stat(downloadsDir); err == nil {
		defaultDir = downloadsDir
	}

	savePath, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		DefaultFilename:  path.Base(remotePath),
		Title:            "Download File",
		DefaultDirectory: defaultDir,
	})
	if err != nil || savePath == "" {
		return "", err
	}

	if _, err := a.PullFile(deviceId, remotePath, savePath); err != nil {
		return "", err
	}
	return savePath, nil
}

// PushFile pushes a local file to the device
func (a *App) PushFile(deviceId, localPath, remotePath string) (string, error) {
	msg, err := a.client.Push(a.opCtx(), deviceId, localPath, remotePath)
	LogUserAction(ActionFilePush, deviceId, map[string]interface{}{
		"local":   localPath,
		"remote":  remotePath,
		"success": err == nil,
	})
	return msg, err
}

// ReadDeviceFile returns a device file as text, for previews.
func (a *App) ReadDeviceFile(deviceId, pathStr string) (string, error) {
	data, err := a.client.ReadFile(a.opCtx(), deviceId, pathStr)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeleteFile deletes a file or directory on the device
func (a *App) DeleteFile(deviceId, pathStr string) (string, error) {
	msg, err := a.client.Delete(a.opCtx(), deviceId, pathStr)
	LogUserAction(ActionFileDelete, deviceId, map[string]interface{}{"path": pathStr, "success": err == nil})
	return msg, err
}

// RenameFile renames within the same directory
func (a *App) RenameFile(deviceId, pathStr, newName string) (string, error) {
	dest := path.Join(path.Dir(pathStr), newName)
	msg, err := a.client.Rename(a.opCtx(), deviceId, pathStr, dest)
	LogUserAction(ActionFileMove, deviceId, map[string]interface{}{"src": pathStr, "dest": dest, "success": err == nil})
	return msg, err
}

// MoveFile moves a file or directory on the device
func (a *App) MoveFile(deviceId, src, dest string) (string, error) {
	msg, err := a.client.Move(a.opCtx(), deviceId, src, dest)
	LogUserAction(ActionFileMove, deviceId, map[string]interface{}{"src": src, "dest": dest, "success": err == nil})
	return msg, err
}

// CopyFile copies a file or directory on the device
func (a *App) CopyFile(deviceId, src, dest string) (string, error) {
	msg, err := a.client.Copy(a.opCtx(), deviceId, src, dest)
	LogUserAction(ActionFileCopy, deviceId, map[string]interface{}{"src": src, "dest": dest, "success": err == nil})
	return msg, err
}

// CreateFolder creates a new directory on the device
func (a *App) CreateFolder(deviceId, pathStr string) (string, error) {
	msg, err := a.client.CreateFolder(a.opCtx(), deviceId, pathStr)
	LogUserAction(ActionFolderNew, deviceId, map[string]interface{}{"path": pathStr, "success": err == nil})
	return msg, err
}
