package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adbdesk.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changes := make(chan Config, 4)
	w := NewConfigWatcher(path, func(c Config) { changes <- c })
	w.delay = 20 * time.Millisecond
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("log_level: warn\ncommand_timeout: 5s\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		if cfg.LogLevel != "warn" || cfg.CommandTimeout != 5*time.Second {
			t.Errorf("Unexpected reloaded config %+v", cfg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestConfigWatcherIgnoresOtherFilesAndBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adbdesk.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changes := make(chan Config, 4)
	w := NewConfigWatcher(path, func(c Config) { changes <- c })
	w.delay = 20 * time.Millisecond
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("log_level: debug\n"), 0644)
	os.WriteFile(path, []byte("log_level: chatty\n"), 0644)

	select {
	case cfg := <-changes:
		t.Errorf("Unexpected reload %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatcherStopIsIdempotent(t *testing.T) {
	w := NewConfigWatcher(filepath.Join(t.TempDir(), "c.yaml"), func(Config) {})
	w.Stop()
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	w.Stop()
	w.Stop()
}
