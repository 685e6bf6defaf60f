// Package settings persists user preferences, the pinned device, per-device
// last-active times and the shell command history as JSON files.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Preferences are the user-facing toggles of the settings page.
type Preferences struct {
	CheckUpdatesOnLaunch bool   `json:"checkUpdatesOnLaunch"`
	ShowHiddenFiles      bool   `json:"showHiddenFiles"`
	ConfirmBeforeDelete  bool   `json:"confirmBeforeDelete"`
	DefaultLogLevel      string `json:"defaultLogLevel"` // logcat priority letter
	MaxCommandHistory    int    `json:"maxCommandHistory"`
}

// DefaultPreferences matches a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		CheckUpdatesOnLaunch: true,
		ConfirmBeforeDelete:  true,
		DefaultLogLevel:      "V",
		MaxCommandHistory:    100,
	}
}

// Validate rejects values the UI never offers.
func (p Preferences) Validate() error {
	if !strings.Contains("VDIWEF", p.DefaultLogLevel) || len(p.DefaultLogLevel) != 1 {
		return fmt.Errorf("invalid log level %q", p.DefaultLogLevel)
	}
	if p.MaxCommandHistory < 0 || p.MaxCommandHistory > 10000 {
		return fmt.Errorf("maxCommandHistory out of range: %d", p.MaxCommandHistory)
	}
	return nil
}

// Settings is the on-disk shape of settings.json.
type Settings struct {
	LastActive   map[string]int64 `json:"lastActive"`
	PinnedSerial string           `json:"pinnedSerial"`
	Preferences  Preferences      `json:"preferences"`
}

// Service keeps settings in memory and writes them on Save or Close.
type Service struct {
	settingsPath string
	historyPath  string

	mu       sync.RWMutex
	settings Settings
	history  []string

	logFunc func(format string, args ...interface{})
}

// Config for New. An empty ConfigDir uses <UserConfigDir>/adbdesk.
type Config struct {
	ConfigDir string
	LogFunc   func(format string, args ...interface{})
}

// New loads whatever is already on disk; missing or corrupt files start
// from defaults.
func New(cfg Config) (*Service, error) {
	configDir := cfg.ConfigDir
	if configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		configDir = filepath.Join(dir, "adbdesk")
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	s := &Service{
		settingsPath: filepath.Join(configDir, "settings.json"),
		historyPath:  filepath.Join(configDir, "history.json"),
		settings: Settings{
			LastActive:  make(map[string]int64),
			Preferences: DefaultPreferences(),
		},
		logFunc: cfg.LogFunc,
	}
	s.load()
	return s, nil
}

func (s *Service) log(format string, args ...interface{}) {
	if s.logFunc != nil {
		s.logFunc(format, args...)
	}
}

func (s *Service) load() {
	if data, err := os.ReadFile(s.settingsPath); err == nil {
		var loaded Settings
		if err := json.Unmarshal(data, &loaded); err != nil {
			s.log("Ignoring corrupt %s: %v", s.settingsPath, err)
		} else {
			if loaded.LastActive != nil {
				s.settings.LastActive = loaded.LastActive
			}
			s.settings.PinnedSerial = loaded.PinnedSerial
			if loaded.Preferences.Validate() == nil {
				s.settings.Preferences = loaded.Preferences
			}
		}
	}

	if data, err := os.ReadFile(s.historyPath); err == nil {
		if err := json.Unmarshal(data, &s.history); err != nil {
			s.log("Ignoring corrupt %s: %v", s.historyPath, err)
			s.history = nil
		}
	}
}

// ========================================
// Devices
// ========================================

func (s *Service) LastActive(serial string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.LastActive[serial]
}

// Touch records now as serial's last-active time.
func (s *Service) Touch(serial string, now time.Time) {
	if serial == "" {
		return
	}
	s.mu.Lock()
	s.settings.LastActive[serial] = now.Unix()
	s.mu.Unlock()
}

// AllLastActive returns a copy.
func (s *Service) AllLastActive() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.settings.LastActive))
	for k, v := range s.settings.LastActive {
		out[k] = v
	}
	return out
}

func (s *Service) PinnedSerial() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.PinnedSerial
}

// SetPinnedSerial pins serial; an empty string unpins.
func (s *Service) SetPinnedSerial(serial string) {
	s.mu.Lock()
	s.settings.PinnedSerial = serial
	s.mu.Unlock()
}

// ========================================
// Preferences
// ========================================

func (s *Service) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Preferences
}

// SetPreferences replaces all preferences and trims the history to the new
// limit.
func (s *Service) SetPreferences(p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings.Preferences = p
	s.trimHistoryLocked()
	s.mu.Unlock()
	return nil
}

// ResetPreferences restores the defaults.
func (s *Service) ResetPreferences() Preferences {
	p := DefaultPreferences()
	s.mu.Lock()
	s.settings.Preferences = p
	s.trimHistoryLocked()
	s.mu.Unlock()
	return p
}

// ========================================
// Command history
// ========================================

// AddHistory appends cmd, dropping an immediate repeat, and keeps at most
// MaxCommandHistory entries.
func (s *Service) AddHistory(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.history); n > 0 && s.history[n-1] == cmd {
		return
	}
	s.history = append(s.history, cmd)
	s.trimHistoryLocked()
}

func (s *Service) trimHistoryLocked() {
	max := s.settings.Preferences.MaxCommandHistory
	if len(s.history) > max {
		s.history = append([]string(nil), s.history[len(s.history)-max:]...)
	}
}

// History returns a copy, oldest first.
func (s *Service) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.history...)
}

func (s *Service) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// ========================================
// Persistence
// ========================================

// Save writes settings.json and history.json.
func (s *Service) Save() error {
	s.mu.RLock()
	settingsData, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		s.mu.RUnlock()
		return err
	}
	history := s.history
	if history == nil {
		history = []string{}
	}
	historyData, err := json.Marshal(history)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.settingsPath, settingsData); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if err := writeFileAtomic(s.historyPath, historyData); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// writeFileAtomic writes to a temp file in the same directory and renames
// it over path, so a crash never leaves half a JSON document.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// SettingsPath is the settings.json location.
func (s *Service) SettingsPath() string { return s.settingsPath }

// Close saves everything; errors are logged, not returned, so shutdown
// always completes.
func (s *Service) Close() error {
	if err := s.Save(); err != nil {
		s.log("Error saving settings on close: %v", err)
	}
	return nil
}
