package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"adbdesk/pkg/adb"
	"adbdesk/pkg/binpath"
	"adbdesk/pkg/mirror"
	"adbdesk/pkg/settings"
)

// App struct
type App struct {
	ctx     context.Context
	version string

	cfgMu   sync.RWMutex
	cfg     Config
	cfgPath string

	resolver binpath.Resolver
	client   *adb.Client
	mirror   *mirror.Manager
	store    *MetadataStore
	settings *settings.Service

	monitor *DeviceMonitor
	watcher *ConfigWatcher

	events   *EventBus
	hub      *WebSocketHub
	registry *prometheus.Registry

	// shell passthrough throttle
	shellLimiter *rate.Limiter

	// Runtime logs
	runtimeLogs []string
	logsMu      sync.Mutex
}

// NewApp creates a new App instance. cfgPath may be empty when the config
// came from the environment only; the file is then neither watched nor
// written.
func NewApp(version string, cfg Config, cfgPath string) (*App, error) {
	return newApp(version, cfg, cfgPath, adb.ExecRunner{})
}

func newApp(version string, cfg Config, cfgPath string, runner adb.Runner) (*App, error) {
	registry := newMetricsRegistry()
	runner = instrumentedRunner{next: runner, metrics: newCommandMetrics(registry)}

	a := &App{
		version:  version,
		cfg:      cfg,
		cfgPath:  cfgPath,
		resolver: resolverFor(cfg),
		events:   NewEventBus(),
		hub:      NewWebSocketHub(),
		registry: registry,
	}
	a.client = adb.New(a.resolver.Resolve(binpath.ADB), runner, cfg.CommandTimeout)
	a.events.Add(a.hub)

	a.mirror = mirror.NewManager(func() string {
		return a.resolver.Resolve(binpath.Scrcpy)
	}, a.events, ModuleLogger("mirror"))
	a.mirror.Runner = runner
	registerSessionGauge(registry, func() int { return len(a.mirror.Sessions()) })

	store, err := NewMetadataStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	a.store = store

	a.settings, err = settings.New(settings.Config{ConfigDir: cfg.DataDir, LogFunc: a.Log})
	if err != nil {
		store.Close()
		return nil, err
	}

	a.monitor = NewDeviceMonitor(adbTrackDevices(func() string { return a.client.Path }), a.onDevicesChanged)
	a.shellLimiter = rate.NewLimiter(shellLimit(cfg.ShellRatePerSec), cfg.ShellBurst)
	return a, nil
}

func resolverFor(cfg Config) binpath.Resolver {
	return binpath.Default(cfg.ResourceDir, binpath.Static{
		binpath.ADB:    cfg.AdbPath,
		binpath.Scrcpy: cfg.ScrcpyPath,
	})
}

// shellLimit maps a zero rate to "unlimited".
func shellLimit(perSec float64) rate.Limit {
	if perSec <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSec)
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	LogAppState(StateStarting, map[string]interface{}{
		"version": a.version,
		"adb":     a.client.Path,
		"dataDir": a.Config().DataDir,
	})

	if a.Config().MonitorDevices {
		a.StartDeviceMonitor()
	}
	if a.cfgPath != "" {
		a.watcher = NewConfigWatcher(a.cfgPath, a.applyConfig)
		if err := a.watcher.Start(); err != nil {
			LogWarn("config").Err(err).Msg("Config reload disabled")
		}
	}

	LogAppState(StateReady, nil)
}

// Shutdown is called when the application is closing
func (a *App) Shutdown(ctx context.Context) {
	LogAppState(StateShuttingDown, nil)
	a.StopDeviceMonitor()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.mirror.StopAll()

	if err := a.settings.Close(); err != nil {
		LogError("app").Err(err).Msg("Failed to save settings")
	}
	if err := a.store.Close(); err != nil {
		LogError("app").Err(err).Msg("Failed to close metadata store")
	}
}

// opCtx is the parent of every bound call.
func (a *App) opCtx() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// GetAppVersion returns the application version
func (a *App) GetAppVersion() string {
	return a.version
}

// Config returns the configuration currently in effect.
func (a *App) Config() Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

// applyConfig takes over the settings that can change at runtime. Paths,
// data_dir and http_addr are read once at startup.
func (a *App) applyConfig(cfg Config) {
	a.cfgMu.Lock()
	old := a.cfg
	a.cfg = cfg
	a.cfgMu.Unlock()

	if level, err := ParseLogLevel(cfg.LogLevel); err == nil {
		SetLogLevel(level)
	}
	a.client.SetTimeout(cfg.CommandTimeout)
	a.shellLimiter.SetLimit(shellLimit(cfg.ShellRatePerSec))
	a.shellLimiter.SetBurst(cfg.ShellBurst)

	if cfg.MonitorDevices != old.MonitorDevices && a.ctx != nil {
		if cfg.MonitorDevices {
			a.StartDeviceMonitor()
		} else {
			a.StopDeviceMonitor()
		}
	}
	if cfg.AdbPath != old.AdbPath || cfg.ScrcpyPath != old.ScrcpyPath ||
		cfg.ResourceDir != old.ResourceDir || cfg.DataDir != old.DataDir || cfg.HTTPAddr != old.HTTPAddr {
		LogWarn("config").Msg("Path and address changes take effect after restart")
	}

	LogInfo("config").
		Str("logLevel", cfg.LogLevel).
		Dur("commandTimeout", cfg.CommandTimeout).
		Float64("shellRate", cfg.ShellRatePerSec).
		Msg("Config applied")
	a.events.Emit(EventConfigChanged, cfg)
}

// Log adds a message to the runtime logs
func (a *App) Log(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	a.logsMu.Lock()
	a.runtimeLogs = append(a.runtimeLogs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), text))
	if len(a.runtimeLogs) > 1000 {
		a.runtimeLogs = a.runtimeLogs[len(a.runtimeLogs)-1000:]
	}
	a.logsMu.Unlock()
	LogInfo("app").Msg(text)
}

// GetBackendLogs returns the captured backend logs
func (a *App) GetBackendLogs() []string {
	a.logsMu.Lock()
	defer a.logsMu.Unlock()
	logs := make([]string, len(a.runtimeLogs))
	copy(logs, a.runtimeLogs)
	return logs
}

// GetRecentLogFile returns the tail of the persistent log.
func (a *App) GetRecentLogFile(lines int) ([]string, error) {
	if lines <= 0 {
		lines = 200
	}
	return ReadRecentLogs(lines)
}

// GetSystemInfo reports versions and the paths in use.
func (a *App) GetSystemInfo() SystemInfo {
	cfg := a.Config()
	return SystemInfo{
		Version:        a.version,
		OS:             runtime.GOOS,
		Arch:           runtime.GOARCH,
		AdbPath:        a.client.Path,
		ScrcpyPath:     a.resolver.Resolve(binpath.Scrcpy),
		DataDir:        cfg.DataDir,
		ConfigPath:     a.cfgPath,
		SettingsFile:   a.settings.SettingsPath(),
		LogFile:        GetLogFilePath(),
		MonitorRunning: a.monitor.Running(),
	}
}
