package adb

import (
	"bytes"
	"context"
	"testing"
)

func TestListFiles(t *testing.T) {
	r := newFakeRunner().stdout("-s emulator-5554 shell ls -l '/sdcard/'",
		"total 8\ndrwxrwx--x 2 root sdcard_rw 4096 2024-01-01 00:00 DCIM\n")
	got, err := newTestClient(r).ListFiles(context.Background(), serial, "/sdcard/")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(got) != 1 || got[0].Path != "/sdcard/DCIM" || !got[0].IsDir {
		t.Errorf("Unexpected listing %+v", got)
	}
}

func TestListFilesFailure(t *testing.T) {
	r := newFakeRunner().fail("-s emulator-5554 shell ls -l '/root'", "ls: /root: Permission denied\n")
	_, err := newTestClient(r).ListFiles(context.Background(), serial, "/root")
	if err == nil || err.Error() != "ls: /root: Permission denied" {
		t.Errorf("Expected stderr error, got %v", err)
	}
}

func TestFileOps(t *testing.T) {
	r := newFakeRunner().
		stdout("-s emulator-5554 pull /sdcard/a.txt /tmp/a.txt", "").
		stdout("-s emulator-5554 push /tmp/b.txt /sdcard/b.txt", "").
		stdout("-s emulator-5554 shell rm -f -r '/sdcard/old'", "").
		stdout("-s emulator-5554 shell mv '/sdcard/a' '/sdcard/b'", "").
		stdout("-s emulator-5554 shell cp -r '/sdcard/a' '/sdcard/c'", "").
		stdout("-s emulator-5554 shell mkdir -p '/sdcard/new/dir'", "")
	c := newTestClient(r)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() (string, error)
		want string
	}{
		{"pull", func() (string, error) { return c.Pull(ctx, serial, "/sdcard/a.txt", "/tmp/a.txt") }, "Download successful"},
		{"push", func() (string, error) { return c.Push(ctx, serial, "/tmp/b.txt", "/sdcard/b.txt") }, "Upload successful"},
		{"delete", func() (string, error) { return c.Delete(ctx, serial, "/sdcard/old") }, "Delete successful"},
		{"rename", func() (string, error) { return c.Rename(ctx, serial, "/sdcard/a", "/sdcard/b") }, "Rename successful"},
		{"move", func() (string, error) { return c.Move(ctx, serial, "/sdcard/a", "/sdcard/b") }, "Move successful"},
		{"copy", func() (string, error) { return c.Copy(ctx, serial, "/sdcard/a", "/sdcard/c") }, "Copy successful"},
		{"mkdir", func() (string, error) { return c.CreateFolder(ctx, serial, "/sdcard/new/dir") }, "Folder created"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			if err != nil || got != tt.want {
				t.Errorf("got (%q, %v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestReadFileKeepsBytes(t *testing.T) {
	content := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x00}
	r := newFakeRunner().on("-s emulator-5554 exec-out cat '/sdcard/x.png'", Result{Stdout: content})
	got, err := newTestClient(r).ReadFile(context.Background(), serial, "/sdcard/x.png")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("ReadFile = %v, want %v", got, content)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/sdcard/DCIM", `'/sdcard/DCIM'`},
		{"/sdcard/My Photos", `'/sdcard/My Photos'`},
		{"a'b", `'a'\''b'`},
		{"x; rm y", `'x; rm y'`},
		{"$(reboot)", `'$(reboot)'`},
		{"", `''`},
	}
	for _, tt := range tests {
		if got := ShellQuote(tt.in); got != tt.want {
			t.Errorf("ShellQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

// Paths reach the device as a single quoted word, whatever they contain.
func TestFileOpsQuotePaths(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		run  func(c *Client)
		want string
	}{
		{"list", func(c *Client) { c.ListFiles(ctx, serial, "/sdcard/My Photos") },
			`-s emulator-5554 shell ls -l '/sdcard/My Photos'`},
		{"read", func(c *Client) { c.ReadFile(ctx, serial, "/sdcard/a'b.txt") },
			`-s emulator-5554 exec-out cat '/sdcard/a'\''b.txt'`},
		{"delete", func(c *Client) { c.Delete(ctx, serial, "/sdcard/x; rm y") },
			`-s emulator-5554 shell rm -f -r '/sdcard/x; rm y'`},
		{"rename", func(c *Client) { c.Rename(ctx, serial, "/sdcard/My Photos", "/sdcard/a'b") },
			`-s emulator-5554 shell mv '/sdcard/My Photos' '/sdcard/a'\''b'`},
		{"move", func(c *Client) { c.Move(ctx, serial, "/sdcard/$(id)", "/sdcard/x && y") },
			`-s emulator-5554 shell mv '/sdcard/$(id)' '/sdcard/x && y'`},
		{"copy", func(c *Client) { c.Copy(ctx, serial, "/sdcard/a b", "/sdcard/`id`") },
			"-s emulator-5554 shell cp -r '/sdcard/a b' '/sdcard/`id`'"},
		{"mkdir", func(c *Client) { c.CreateFolder(ctx, serial, "/sdcard/New Folder") },
			`-s emulator-5554 shell mkdir -p '/sdcard/New Folder'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner().stdout(tt.want, "")
			tt.run(newTestClient(r))
			if !r.called(tt.want) {
				t.Errorf("calls = %q, want %q", r.calls, tt.want)
			}
		})
	}
}
