// Package binpath decides which adb and scrcpy executables to run.
//
// The desktop build ships a scrcpy bundle (which also carries adb) under the
// resource directory. Resolvers are composed with Chain so explicit config
// overrides win over the bundle, and the bundle wins over $PATH.
package binpath

import (
	"os"
	"path/filepath"
	"runtime"
)

// Tool names
const (
	ADB    = "adb"
	Scrcpy = "scrcpy"
)

// Resolver maps a tool name to the path (or bare name) to execute.
// An empty result means the resolver has no opinion.
type Resolver interface {
	Resolve(tool string) string
}

// Func adapts a plain function to Resolver.
type Func func(tool string) string

func (f Func) Resolve(tool string) string { return f(tool) }

// SystemPath resolves every tool to its bare name, leaving lookup to $PATH.
type SystemPath struct{}

func (SystemPath) Resolve(tool string) string { return tool }

// Static holds explicit per-tool paths, typically from the config file.
type Static map[string]string

func (s Static) Resolve(tool string) string { return s[tool] }

// Chain returns the first non-empty answer.
type Chain []Resolver

func (c Chain) Resolve(tool string) string {
	for _, r := range c {
		if r == nil {
			continue
		}
		if p := r.Resolve(tool); p != "" {
			return p
		}
	}
	return ""
}

// Bundled looks for tools inside the per-OS scrcpy bundle:
//
//	<ResourceDir>/binaries/scrcpy-win64/adb.exe
//	<ResourceDir>/binaries/scrcpy-linux/adb
//	<ResourceDir>/binaries/scrcpy-macos/adb
//
// A bundled file without any exec bit is made 0755 before use.
type Bundled struct {
	ResourceDir string
	GOOS        string // defaults to runtime.GOOS
}

func (b Bundled) goos() string {
	if b.GOOS != "" {
		return b.GOOS
	}
	return runtime.GOOS
}

// Dir returns the bundle directory for the target OS, or "" on an
// unsupported platform.
func (b Bundled) Dir() string {
	var sub string
	switch b.goos() {
	case "windows":
		sub = "scrcpy-win64"
	case "linux":
		sub = "scrcpy-linux"
	case "darwin":
		sub = "scrcpy-macos"
	default:
		return ""
	}
	root := b.ResourceDir
	if root == "" {
		root = "."
	}
	return filepath.Join(root, "binaries", sub)
}

func (b Bundled) Resolve(tool string) string {
	dir := b.Dir()
	if dir == "" {
		return ""
	}
	name := tool
	if b.goos() == "windows" {
		name += ".exe"
	}
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	if b.goos() != "windows" && info.Mode().Perm()&0o111 == 0 {
		_ = os.Chmod(path, 0o755)
	}
	return path
}

// Default is the resolver used by the desktop app: config overrides, then the
// bundle, then $PATH.
func Default(resourceDir string, overrides Static) Resolver {
	return Chain{overrides, Bundled{ResourceDir: resourceDir}, SystemPath{}}
}
