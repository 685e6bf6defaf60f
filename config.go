package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config is read from a YAML file and overridden by ADBDESK_* variables.
type Config struct {
	LogLevel  string `yaml:"log_level" env:"ADBDESK_LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogToFile bool   `yaml:"log_to_file" env:"ADBDESK_LOG_TO_FILE" env-description:"also write rotating log files under data_dir/logs"`
	DataDir   string `yaml:"data_dir" env:"ADBDESK_DATA_DIR" env-description:"settings, metadata database and logs"`

	ResourceDir string `yaml:"resource_dir" env:"ADBDESK_RESOURCE_DIR" env-description:"directory holding binaries/scrcpy-<platform>"`
	AdbPath     string `yaml:"adb_path" env:"ADBDESK_ADB_PATH" env-description:"explicit adb executable"`
	ScrcpyPath  string `yaml:"scrcpy_path" env:"ADBDESK_SCRCPY_PATH" env-description:"explicit scrcpy executable"`

	CommandTimeout  time.Duration `yaml:"command_timeout" env:"ADBDESK_COMMAND_TIMEOUT" env-description:"upper bound for a single adb call"`
	ShellRatePerSec float64       `yaml:"shell_rate_per_sec" env:"ADBDESK_SHELL_RATE" env-description:"shell passthrough calls per second"`
	ShellBurst      int           `yaml:"shell_burst" env:"ADBDESK_SHELL_BURST" env-description:"shell passthrough burst"`

	MonitorDevices bool   `yaml:"monitor_devices" env:"ADBDESK_MONITOR_DEVICES" env-description:"stream adb track-devices and emit devices-changed"`
	HTTPAddr       string `yaml:"http_addr" env:"ADBDESK_HTTP_ADDR" env-description:"serve the HTTP API on this address"`
}

// DefaultConfig is applied before the file and the environment, so a key
// missing from both keeps these values.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		LogToFile:       true,
		CommandTimeout:  30 * time.Second,
		ShellRatePerSec: 5,
		ShellBurst:      10,
		MonitorDevices:  true,
	}
}

// LoadConfig reads path when it exists and the environment in any case.
// An empty path means environment only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var err error
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			err = cleanenv.ReadConfig(path, &cfg)
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to stat config %s: %w", path, statErr)
		} else {
			err = cleanenv.ReadEnv(&cfg)
		}
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, cfg.Validate()
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "adbdesk")
}

// Validate checks values that would otherwise fail much later.
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.CommandTimeout)
	}
	if c.ShellRatePerSec < 0 {
		return fmt.Errorf("shell_rate_per_sec must not be negative")
	}
	if c.ShellBurst < 1 {
		return fmt.Errorf("shell_burst must be at least 1")
	}
	return nil
}

// SaveConfig writes cfg as YAML.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// WriteEnvUsage prints every ADBDESK_* variable with its description.
func WriteEnvUsage(w io.Writer) {
	var cfg Config
	cleanenv.FUsage(w, &cfg, nil)()
}
