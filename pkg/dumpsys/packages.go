package dumpsys

import (
	"sort"
	"strings"

	"adbdesk/pkg/types"
)

const (
	packagePrefix  = "package:"
	unknownDUSize  = "Unknown"
	permissionsHdr = "requested permissions:"
)

// ParseDisabledSet parses `pm list packages -d` into a set of package ids.
func ParseDisabledSet(out string) map[string]struct{} {
	disabled := make(map[string]struct{})
	for _, line := range Lines(out) {
		line = strings.TrimSpace(line)
		if id, ok := strings.CutPrefix(line, packagePrefix); ok {
			disabled[id] = struct{}{}
		}
	}
	return disabled
}

// ParsePackageList parses `pm list packages -f` lines of the form
// package:<path>=<id>. The split is on the last '=' because APK paths may
// themselves contain '='.
func ParsePackageList(out string, isSystem bool, disabled map[string]struct{}) []types.PackageSummary {
	pkgs := []types.PackageSummary{}
	for _, line := range Lines(out) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rest, ok := strings.CutPrefix(line, packagePrefix)
		if !ok {
			continue
		}
		i := strings.LastIndex(rest, "=")
		if i < 0 {
			continue
		}
		id := rest[i+1:]
		_, off := disabled[id]
		pkgs = append(pkgs, types.PackageSummary{
			PackageID: id,
			Path:      rest[:i],
			IsSystem:  isSystem,
			IsEnabled: !off,
		})
	}
	return pkgs
}

// SortPackages orders packages by id.
func SortPackages(pkgs []types.PackageSummary) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		return pkgs[i].PackageID < pkgs[j].PackageID
	})
}

// ParsePackageDetails reads `dumpsys package <id>`. Only the requested
// permissions section is stateful: it starts at its header and ends at the first
// blank line or line containing ':'.
func ParsePackageDetails(id, dump string) types.PackageDetails {
	d := types.PackageDetails{
		PackageID:   id,
		Size:        unknownDUSize,
		Permissions: []string{},
		IsEnabled:   true,
	}

	inPermissions := false
	for _, line := range Lines(dump) {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, permissionsHdr) {
			inPermissions = true
			continue
		}
		if inPermissions {
			if trimmed != "" && !strings.Contains(trimmed, ":") {
				d.Permissions = append(d.Permissions, trimmed)
				continue
			}
			inPermissions = false
		}

		if strings.HasPrefix(trimmed, "User 0:") {
			if state, ok := After(trimmed, "enabled="); ok && state != "" {
				switch state[0] {
				case '2', '3', '4':
					d.IsEnabled = false
				default:
					d.IsEnabled = true
				}
			}
		}

		switch {
		case strings.HasPrefix(trimmed, "versionName="):
			d.VersionName = strings.TrimPrefix(trimmed, "versionName=")
		case strings.HasPrefix(trimmed, "versionCode="):
			// versionCode=123 minSdk=21 targetSdk=33
			d.VersionCode = inlineValue(trimmed, "versionCode=")
			d.MinSDK = inlineValue(trimmed, "minSdk=")
			d.TargetSDK = inlineValue(trimmed, "targetSdk=")
		case strings.HasPrefix(trimmed, "firstInstallTime="):
			d.FirstInstallTime = strings.TrimPrefix(trimmed, "firstInstallTime=")
		case strings.HasPrefix(trimmed, "lastUpdateTime="):
			d.LastUpdateTime = strings.TrimPrefix(trimmed, "lastUpdateTime=")
		case strings.HasPrefix(trimmed, "userId="):
			d.UID = strings.TrimPrefix(trimmed, "userId=")
		case strings.HasPrefix(trimmed, "codePath="):
			d.Path = strings.TrimPrefix(trimmed, "codePath=")
		case strings.HasPrefix(trimmed, "installerPackageName="):
			d.Installer = strings.TrimPrefix(trimmed, "installerPackageName=")
		}
	}
	return d
}

// inlineValue returns the value of key=value within line, up to the next
// whitespace. Keys are located independently so column order does not matter.
func inlineValue(line, key string) string {
	i := strings.Index(line, key)
	if i < 0 {
		return ""
	}
	rest := line[i+len(key):]
	if end := strings.IndexAny(rest, " \t"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// ParseDiskUsage returns the size column of `du -h` output.
func ParseDiskUsage(out string) string {
	if size, ok := Field(Fields(out), 0); ok {
		return size
	}
	return unknownDUSize
}
