package adb

import (
	"context"
	"strings"

	"adbdesk/pkg/dumpsys"
	"adbdesk/pkg/types"
)

// ListPackages lists third-party packages and, when includeSystem is set,
// system packages too, sorted by id. The disabled set is best effort.
func (c *Client) ListPackages(ctx context.Context, serial string, includeSystem bool) ([]types.PackageSummary, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return nil, err
	}

	disabled := map[string]struct{}{}
	if res, err := c.run(ctx, deviceArgs(serial, "shell", "pm", "list", "packages", "-d")...); err == nil {
		disabled = dumpsys.ParseDisabledSet(string(res.Stdout))
	}

	res, err := c.run(ctx, deviceArgs(serial, "shell", "pm", "list", "packages", "-f", "-3")...)
	if err != nil {
		return nil, err
	}
	pkgs := dumpsys.ParsePackageList(string(res.Stdout), false, disabled)

	if includeSystem {
		res, err := c.run(ctx, deviceArgs(serial, "shell", "pm", "list", "packages", "-f", "-s")...)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, dumpsys.ParsePackageList(string(res.Stdout), true, disabled)...)
	}

	dumpsys.SortPackages(pkgs)
	return pkgs, nil
}

// PackageDetails reads `dumpsys package` and sizes the install directory.
func (c *Client) PackageDetails(ctx context.Context, serial, id string) (types.PackageDetails, error) {
	if err := validateTarget(serial, id); err != nil {
		return types.PackageDetails{}, err
	}
	out, err := c.output(ctx, deviceArgs(serial, "shell", "dumpsys", "package", id)...)
	if err != nil {
		return types.PackageDetails{}, err
	}

	d := dumpsys.ParsePackageDetails(id, string(out))
	if d.Path != "" {
		if res, err := c.run(ctx, deviceArgs(serial, "shell", "du", "-h", ShellQuote(d.Path))...); err == nil {
			d.Size = dumpsys.ParseDiskUsage(string(res.Stdout))
		}
	}
	return d, nil
}

// Uninstall removes a package. pm reports the outcome on stdout.
func (c *Client) Uninstall(ctx context.Context, serial, id string) (string, error) {
	if err := validateTarget(serial, id); err != nil {
		return "", err
	}
	args := deviceArgs(serial, "shell", "pm", "uninstall", id)
	res, err := c.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if !strings.Contains(string(res.Stdout), "Success") {
		return "", &CommandError{Args: args, Output: string(res.Stdout), ExitCode: res.ExitCode}
	}
	return "Uninstalled successfully", nil
}

// Install installs (or replaces) an APK from the host.
func (c *Client) Install(ctx context.Context, serial, apkPath string) (string, error) {
	if err := ValidateDeviceID(serial); err != nil {
		return "", err
	}
	args := deviceArgs(serial, "install", "-r", apkPath)
	res, err := c.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if !strings.Contains(string(res.Stdout), "Success") {
		return "", &CommandError{Args: args, Output: res.Stderr, ExitCode: res.ExitCode}
	}
	return "Installed successfully", nil
}

func (c *Client) Enable(ctx context.Context, serial, id string) error {
	return c.pmAction(ctx, serial, id, "pm", "enable", id)
}

func (c *Client) Disable(ctx context.Context, serial, id string) error {
	return c.pmAction(ctx, serial, id, "pm", "disable-user", "--user", "0", id)
}

// Clear wipes the package's data.
func (c *Client) Clear(ctx context.Context, serial, id string) error {
	return c.pmAction(ctx, serial, id, "pm", "clear", id)
}

func (c *Client) ForceStop(ctx context.Context, serial, id string) error {
	if err := validateTarget(serial, id); err != nil {
		return err
	}
	_, err := c.output(ctx, deviceArgs(serial, "shell", "am", "force-stop", id)...)
	return err
}

// Launch starts the package's launcher activity through monkey.
func (c *Client) Launch(ctx context.Context, serial, id string) error {
	if err := validateTarget(serial, id); err != nil {
		return err
	}
	_, err := c.output(ctx, deviceArgs(serial, "shell", "monkey", "-p", id, "-c", "android.intent.category.LAUNCHER", "1")...)
	return err
}

// pmAction treats "Error" or "Failure" on stderr as failure even when pm
// exits 0, which older releases do.
func (c *Client) pmAction(ctx context.Context, serial, id string, shellArgs ...string) error {
	if err := validateTarget(serial, id); err != nil {
		return err
	}
	args := deviceArgs(serial, append([]string{"shell"}, shellArgs...)...)
	res, err := c.run(ctx, args...)
	if err != nil {
		return err
	}
	if !res.Success() || strings.Contains(res.Stderr, "Error") || strings.Contains(res.Stderr, "Failure") {
		return &CommandError{Args: args, Output: res.Stderr, ExitCode: res.ExitCode}
	}
	return nil
}

func validateTarget(serial, id string) error {
	if err := ValidateDeviceID(serial); err != nil {
		return err
	}
	return ValidatePackageID(id)
}
