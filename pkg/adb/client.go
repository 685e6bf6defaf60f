// Package adb is the command facade over the adb executable. Every operation
// is a handful of adb invocations; structured results come from pkg/dumpsys.
package adb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"adbdesk/pkg/dumpsys"
)

// DefaultTimeout bounds every single process call.
const DefaultTimeout = 30 * time.Second

// Client runs adb. It is safe for concurrent use; operations share no state
// beyond the configured path and timeout.
type Client struct {
	Path   string
	Runner Runner

	timeout atomic.Int64
}

// New returns a client for the adb executable at path. A zero timeout means
// DefaultTimeout.
func New(path string, runner Runner, timeout time.Duration) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	c := &Client{Path: path, Runner: runner}
	c.SetTimeout(timeout)
	return c
}

// SetTimeout changes the per-call bound. It may be called while operations run.
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	c.timeout.Store(int64(d))
}

// Timeout returns the per-call bound.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.timeout.Load())
}

// deviceIDPattern 允许的字符: USB 序列号, IP:port, mDNS 名称
var deviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._:\-]+$`)

// ValidateDeviceID rejects serials that could smuggle anything into argv.
func ValidateDeviceID(deviceID string) error {
	if deviceID == "" {
		return fmt.Errorf("device ID cannot be empty")
	}
	if len(deviceID) > 256 {
		return fmt.Errorf("device ID too long (max 256 characters)")
	}
	if !deviceIDPattern.MatchString(deviceID) {
		return fmt.Errorf("invalid device ID format: contains illegal characters")
	}
	dangerousPatterns := []string{";", "&&", "||", "|", "`", "$", "(", ")", "{", "}", "<", ">", "!", "'", "\"", "\\"}
	for _, p := range dangerousPatterns {
		if strings.Contains(deviceID, p) {
			return fmt.Errorf("invalid device ID format: contains dangerous character '%s'", p)
		}
	}
	return nil
}

var packageIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)

// ValidatePackageID accepts Java-style package names only.
func ValidatePackageID(id string) error {
	if !packageIDPattern.MatchString(id) {
		return fmt.Errorf("invalid package name: %q", id)
	}
	return nil
}

// run executes adb with args under the configured timeout. Only spawn failures
// are returned as errors.
func (c *Client) run(ctx context.Context, args ...string) (Result, error) {
	if c.Path == "" {
		return Result{}, ErrNoAdb
	}
	ctx, cancel := context.WithTimeout(ctx, c.Timeout())
	defer cancel()

	res, err := c.Runner.Run(ctx, c.Path, args...)
	if err != nil {
		return res, fmt.Errorf("failed to execute adb: %w", err)
	}
	return res, nil
}

// output is run plus the exit status check.
func (c *Client) output(ctx context.Context, args ...string) ([]byte, error) {
	res, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, &CommandError{Args: args, Output: res.Stderr, ExitCode: res.ExitCode}
	}
	return res.Stdout, nil
}

func deviceArgs(serial string, args ...string) []string {
	return append([]string{"-s", serial}, args...)
}

// ShellQuote quotes s for the device's sh. adb joins its argv into one
// command line, so every path after "shell" or "exec-out" must go through here.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Query runs a shell command for its output. Failure of any kind, and output
// that normalizes to nothing, are reported as absence.
func (c *Client) Query(ctx context.Context, serial, cmd string) (string, bool) {
	out, err := c.output(ctx, deviceArgs(serial, "shell", cmd)...)
	if err != nil {
		return "", false
	}
	return dumpsys.Normalize(string(out))
}

// Action runs a shell command for its effect.
func (c *Client) Action(ctx context.Context, serial, cmd string) error {
	_, err := c.output(ctx, deviceArgs(serial, "shell", cmd)...)
	return err
}

// Shell binds the client to one device as a dumpsys.Shell.
func (c *Client) Shell(ctx context.Context, serial string) dumpsys.Shell {
	return deviceShell{ctx: ctx, c: c, serial: serial}
}

type deviceShell struct {
	ctx    context.Context
	c      *Client
	serial string
}

func (s deviceShell) Query(cmd string) (string, bool) {
	return s.c.Query(s.ctx, s.serial, cmd)
}
