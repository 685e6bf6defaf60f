package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerAppTools registers app management tools
func (s *MCPServer) registerAppTools() {
	// app_list - List installed apps
	s.server.AddTool(
		mcp.NewTool("app_list",
			mcp.WithDescription("List installed packages on a device, sorted by package id"),
			mcp.WithString("device_id",
				mcp.Required(),
				mcp.Description("Device serial"),
			),
			mcp.WithBoolean("include_system",
				mcp.Description("Also list system packages (default false)"),
			),
		),
		s.handleAppList,
	)

	// app_info - Get app details
	s.server.AddTool(
		mcp.NewTool("app_info",
			mcp.WithDescription("Get version, SDK range, permissions and size of an installed package"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("package_name", mcp.Required(), mcp.Description("Package name (e.g., com.example.app)")),
		),
		s.handleAppInfo,
	)

	// app_start - Launch an app
	s.server.AddTool(
		mcp.NewTool("app_start",
			mcp.WithDescription("Launch the launcher activity of a package"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("package_name", mcp.Required(), mcp.Description("Package name to launch")),
		),
		s.handleAppStart,
	)

	// app_stop - Force stop an app
	s.server.AddTool(
		mcp.NewTool("app_stop",
			mcp.WithDescription("Force stop a running app"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("package_name", mcp.Required(), mcp.Description("Package name to stop")),
		),
		s.handleAppStop,
	)

	// app_set_enabled - Enable or disable an app
	s.server.AddTool(
		mcp.NewTool("app_set_enabled",
			mcp.WithDescription("Enable or disable a package for the current user"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("package_name", mcp.Required(), mcp.Description("Package name")),
			mcp.WithBoolean("enabled", mcp.Required(), mcp.Description("true to enable, false to disable")),
		),
		s.handleAppSetEnabled,
	)

	// app_install - Install APK (dangerous)
	s.server.AddTool(
		mcp.NewTool("app_install",
			mcp.WithDescription("Install an APK file on the device (requires confirmation)"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("apk_path", mcp.Required(), mcp.Description("Local path to the APK file")),
		),
		s.handleAppInstall,
	)

	// app_uninstall - Uninstall app (dangerous)
	s.server.AddTool(
		mcp.NewTool("app_uninstall",
			mcp.WithDescription("Uninstall an app from the device (requires confirmation)"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("package_name", mcp.Required(), mcp.Description("Package name to uninstall")),
		),
		s.handleAppUninstall,
	)

	// app_clear_data - Clear app data (dangerous)
	s.server.AddTool(
		mcp.NewTool("app_clear_data",
			mcp.WithDescription("Clear all data of an app (requires confirmation)"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Device serial")),
			mcp.WithString("package_name", mcp.Required(), mcp.Description("Package name to clear data")),
		),
		s.handleAppClearData,
	)
}

func deviceAndPackage(request mcp.CallToolRequest) (string, string, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return "", "", err
	}
	packageName, err := requireString(args, "package_name")
	if err != nil {
		return "", "", err
	}
	return deviceID, packageName, nil
}

func (s *MCPServer) handleAppList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	includeSystem, _ := args["include_system"].(bool)

	packages, err := s.app.ListPackages(deviceID, includeSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d package(s):\n\n", len(packages))
	for _, p := range packages {
		var flags []string
		if p.IsSystem {
			flags = append(flags, "system")
		}
		if !p.IsEnabled {
			flags = append(flags, "disabled")
		}
		if len(flags) > 0 {
			fmt.Fprintf(&b, "- %s (%s)\n", p.PackageID, strings.Join(flags, ", "))
		} else {
			fmt.Fprintf(&b, "- %s\n", p.PackageID)
		}
	}
	return textResult(b.String()), nil
}

func (s *MCPServer) handleAppInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, packageName, err := deviceAndPackage(request)
	if err != nil {
		return nil, err
	}

	info, err := s.app.GetAppInfo(deviceID, packageName)
	if err != nil {
		return nil, fmt.Errorf("failed to get app info: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Package: %s\n", info.PackageID)
	fmt.Fprintf(&b, "Version: %s (%s)\n", info.VersionName, info.VersionCode)
	fmt.Fprintf(&b, "Min SDK: %s, Target SDK: %s\n", info.MinSDK, info.TargetSDK)
	fmt.Fprintf(&b, "Installed: %s, Updated: %s\n", info.FirstInstallTime, info.LastUpdateTime)
	fmt.Fprintf(&b, "Installer: %s\n", info.Installer)
	fmt.Fprintf(&b, "Path: %s\n", info.Path)
	fmt.Fprintf(&b, "Size: %s\n", info.Size)
	fmt.Fprintf(&b, "Enabled: %v\n", info.IsEnabled)
	if len(info.Permissions) > 0 {
		fmt.Fprintf(&b, "\nPermissions (%d):\n", len(info.Permissions))
		for _, perm := range info.Permissions {
			fmt.Fprintf(&b, "  - %s\n", perm)
		}
	}
	return textResult(b.String()), nil
}

func (s *MCPServer) handleAppStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, packageName, err := deviceAndPackage(request)
	if err != nil {
		return nil, err
	}
	if err := s.app.StartApp(deviceID, packageName); err != nil {
		return nil, fmt.Errorf("failed to start app: %w", err)
	}
	return textResult(fmt.Sprintf("App %s started", packageName)), nil
}

func (s *MCPServer) handleAppStop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, packageName, err := deviceAndPackage(request)
	if err != nil {
		return nil, err
	}
	if err := s.app.ForceStopApp(deviceID, packageName); err != nil {
		return nil, fmt.Errorf("failed to stop app: %w", err)
	}
	return textResult(fmt.Sprintf("App %s stopped", packageName)), nil
}

func (s *MCPServer) handleAppSetEnabled(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, packageName, err := deviceAndPackage(request)
	if err != nil {
		return nil, err
	}
	enabled, err := requireBool(request.GetArguments(), "enabled")
	if err != nil {
		return nil, err
	}
	if err := s.app.SetAppEnabled(deviceID, packageName, enabled); err != nil {
		return nil, fmt.Errorf("failed to change app state: %w", err)
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	return textResult(fmt.Sprintf("App %s is %s", packageName, status)), nil
}

// Dangerous operations - require confirmation

func (s *MCPServer) handleAppInstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	deviceID, err := requireString(args, "device_id")
	if err != nil {
		return nil, err
	}
	apkPath, err := requireString(args, "apk_path")
	if err != nil {
		return nil, err
	}

	confirmed, err := s.requestConfirmation(ctx, "Install APK",
		fmt.Sprintf("Device: %s\nAPK: %s", deviceID, apkPath))
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return textResult("Installation cancelled by user"), nil
	}

	result, err := s.app.InstallAPK(deviceID, apkPath)
	if err != nil {
		return nil, fmt.Errorf("failed to install: %w", err)
	}
	return textResult(fmt.Sprintf("APK installed successfully\n%s", result)), nil
}

func (s *MCPServer) handleAppUninstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, packageName, err := deviceAndPackage(request)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.requestConfirmation(ctx, "Uninstall App",
		fmt.Sprintf("Device: %s\nPackage: %s\n\nThis will remove the app and all its data!", deviceID, packageName))
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return textResult("Uninstall cancelled by user"), nil
	}

	result, err := s.app.UninstallApp(deviceID, packageName)
	if err != nil {
		return nil, fmt.Errorf("failed to uninstall: %w", err)
	}
	return textResult(fmt.Sprintf("App %s uninstalled\n%s", packageName, result)), nil
}

func (s *MCPServer) handleAppClearData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, packageName, err := deviceAndPackage(request)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.requestConfirmation(ctx, "Clear App Data",
		fmt.Sprintf("Device: %s\nPackage: %s\n\nThis will delete all app data including saved files, settings, and cache!", deviceID, packageName))
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return textResult("Clear data cancelled by user"), nil
	}

	if err := s.app.ClearAppData(deviceID, packageName); err != nil {
		return nil, fmt.Errorf("failed to clear data: %w", err)
	}
	return textResult(fmt.Sprintf("Data cleared for %s", packageName)), nil
}
