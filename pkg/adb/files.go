package adb

import (
	"context"

	"adbdesk/pkg/dumpsys"
	"adbdesk/pkg/types"
)

// ListFiles lists a device directory with `ls -l`.
func (c *Client) ListFiles(ctx context.Context, serial, path string) ([]types.FileEntry, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return nil, err
	}
	out, err := c.output(ctx, deviceArgs(serial, "shell", "ls", "-l", ShellQuote(path))...)
	if err != nil {
		return nil, err
	}
	return dumpsys.ParseListing(path, string(out)), nil
}

// Pull copies a device file to the host.
func (c *Client) Pull(ctx context.Context, serial, remote, local string) (string, error) {
	return c.fileOp(ctx, serial, "Download successful", "pull", remote, local)
}

// Push copies a host file to the device.
func (c *Client) Push(ctx context.Context, serial, local, remote string) (string, error) {
	return c.fileOp(ctx, serial, "Upload successful", "push", local, remote)
}

// ReadFile returns the raw bytes of a device file. exec-out keeps binary
// content intact, unlike shell.
func (c *Client) ReadFile(ctx context.Context, serial, path string) ([]byte, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return nil, err
	}
	return c.output(ctx, deviceArgs(serial, "exec-out", "cat", ShellQuote(path))...)
}

// Delete removes a file or directory tree.
func (c *Client) Delete(ctx context.Context, serial, path string) (string, error) {
	return c.fileOp(ctx, serial, "Delete successful", "shell", "rm", "-f", "-r", ShellQuote(path))
}

// Rename moves a file within its directory.
func (c *Client) Rename(ctx context.Context, serial, from, to string) (string, error) {
	return c.fileOp(ctx, serial, "Rename successful", "shell", "mv", ShellQuote(from), ShellQuote(to))
}

// Move moves a file or directory anywhere on the device.
func (c *Client) Move(ctx context.Context, serial, from, to string) (string, error) {
	return c.fileOp(ctx, serial, "Move successful", "shell", "mv", ShellQuote(from), ShellQuote(to))
}

// Copy copies a file or directory tree on the device.
func (c *Client) Copy(ctx context.Context, serial, from, to string) (string, error) {
	return c.fileOp(ctx, serial, "Copy successful", "shell", "cp", "-r", ShellQuote(from), ShellQuote(to))
}

// CreateFolder creates a directory and any missing parents.
func (c *Client) CreateFolder(ctx context.Context, serial, path string) (string, error) {
	return c.fileOp(ctx, serial, "Folder created", "shell", "mkdir", "-p", ShellQuote(path))
}

func (c *Client) fileOp(ctx context.Context, serial, ok string, args ...string) (string, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return "", err
	}
	if _, err := c.output(ctx, deviceArgs(serial, args...)...); err != nil {
		return "", err
	}
	return ok, nil
}
