package types

// FileEntry is one node of a device directory listing
type FileEntry struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	IsDir       bool    `json:"is_dir"`
	Size        *uint64 `json:"size"`
	Permissions string  `json:"permissions"`
}

// PackageSummary is an installed application as listed by `pm list packages -f`
type PackageSummary struct {
	PackageID string `json:"package_id"`
	Path      string `json:"path"`
	IsSystem  bool   `json:"is_system"`
	IsEnabled bool   `json:"is_enabled"`
}

// PackageDetails adds version, SDK range, permissions and size to a package
type PackageDetails struct {
	PackageID        string   `json:"package_id"`
	VersionName      string   `json:"version_name"`
	VersionCode      string   `json:"version_code"`
	FirstInstallTime string   `json:"first_install_time"`
	LastUpdateTime   string   `json:"last_update_time"`
	UID              string   `json:"uid"`
	Path             string   `json:"path"`
	Installer        string   `json:"installer"`
	MinSDK           string   `json:"min_sdk"`
	TargetSDK        string   `json:"target_sdk"`
	Size             string   `json:"size"`
	Permissions      []string `json:"permissions"`
	IsEnabled        bool     `json:"is_enabled"`
}
