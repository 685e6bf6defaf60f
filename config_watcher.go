package main

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads the config file when it changes on disk and hands
// the new value to onChange. Invalid files are logged and ignored.
type ConfigWatcher struct {
	path     string
	onChange func(Config)
	delay    time.Duration

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}
	mu      sync.Mutex
}

func NewConfigWatcher(path string, onChange func(Config)) *ConfigWatcher {
	return &ConfigWatcher{
		path:     path,
		onChange: onChange,
		delay:    300 * time.Millisecond,
	}
}

// Start watches the parent directory; editors and SaveConfig replace the
// file rather than writing it in place.
func (w *ConfigWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})

	LogInfo("config").Str("path", w.path).Msg("Watching config file")
	go w.watch(watcher, w.stopCh, w.done)
	return nil
}

func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return
	}
	close(w.stopCh)
	w.watcher.Close()
	<-w.done
	w.watcher = nil
}

func (w *ConfigWatcher) watch(watcher *fsnotify.Watcher, stopCh, done chan struct{}) {
	defer close(done)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.delay, w.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			LogError("config").Err(err).Msg("Watcher error")
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		LogWarn("config").Err(err).Msg("Ignoring invalid config change")
		return
	}
	LogInfo("config").Str("log_level", cfg.LogLevel).Dur("command_timeout", cfg.CommandTimeout).Msg("Config reloaded")
	w.onChange(cfg)
}
