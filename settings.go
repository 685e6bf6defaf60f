package main

import (
	"fmt"

	"adbdesk/pkg/settings"
)

// ========================================
// 偏好设置 / 配置
// ========================================

func (a *App) GetPreferences() settings.Preferences {
	return a.settings.Preferences()
}

func (a *App) SetPreferences(p settings.Preferences) error {
	if err := a.settings.SetPreferences(p); err != nil {
		return err
	}
	LogUserAction(ActionSettingsChange, "", map[string]interface{}{
		"showHiddenFiles":   p.ShowHiddenFiles,
		"defaultLogLevel":   p.DefaultLogLevel,
		"maxCommandHistory": p.MaxCommandHistory,
	})
	return a.settings.Save()
}

func (a *App) ResetPreferences() (settings.Preferences, error) {
	p := a.settings.ResetPreferences()
	LogUserAction(ActionSettingsChange, "", map[string]interface{}{"reset": true})
	return p, a.settings.Save()
}

// GetConfig returns the configuration in effect.
func (a *App) GetConfig() Config {
	return a.Config()
}

// UpdateConfig validates cfg, applies what can change at runtime and writes
// the config file when there is one.
func (a *App) UpdateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		cfg.DataDir = a.Config().DataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if a.cfgPath != "" {
		if err := SaveConfig(a.cfgPath, cfg); err != nil {
			return err
		}
	}
	a.applyConfig(cfg)
	LogUserAction(ActionSettingsChange, "", map[string]interface{}{"config": a.cfgPath})
	return nil
}

// GetConfigPath is empty when no config file is in use.
func (a *App) GetConfigPath() string {
	return a.cfgPath
}

// GetDataDir returns where settings, the metadata database and logs live.
func (a *App) GetDataDir() string {
	return a.Config().DataDir
}

// GetLogFiles lists the persistent log files, newest first.
func (a *App) GetLogFiles() ([]string, error) {
	files, err := ListLogFiles()
	if err != nil {
		return nil, fmt.Errorf("file logging is off: %w", err)
	}
	return files, nil
}
