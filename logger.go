package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

// ========================================
// Structured Logger - 结构化日志
// ========================================

// Logger 全局日志实例
var Logger zerolog.Logger

var persistentLogger *PersistentLogger

// LogLevel 日志级别
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l LogLevel) String() string {
	return l.zerologLevel().String()
}

// ParseLogLevel maps the config spelling ("debug", "info", "warn", "error")
// onto a LogLevel. "warning" is accepted too.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LogConfig 日志配置
type LogConfig struct {
	Level      LogLevel
	Console    bool
	ConsoleOut io.Writer // nil means stdout; MCP mode needs stderr
	File       bool
	FilePath   string
	MaxSizeMB  int // 单个文件上限
	MaxAgeDays int
	MaxBackups int
	Compress   bool // gzip rotated files
}

// DefaultLogConfig logs to the console only.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      LogLevelInfo,
		Console:    true,
		MaxSizeMB:  10,
		MaxAgeDays: 7,
		MaxBackups: 5,
		Compress:   true,
	}
}

// PersistentLogConfig adds a rotating file under <dataDir>/logs.
func PersistentLogConfig(dataDir string) LogConfig {
	cfg := DefaultLogConfig()
	cfg.File = true
	cfg.FilePath = filepath.Join(dataDir, "logs", "adbdesk.log")
	return cfg
}

// ========================================
// PersistentLogger - 日志文件轮转
// ========================================

// PersistentLogger is an io.Writer over a size-rotated log file. Rotated
// files are named <base>_<timestamp>.log and optionally gzipped.
type PersistentLogger struct {
	mu     sync.Mutex
	config LogConfig
	file   *os.File
	size   int64
	logDir string
	prefix string

	stop chan struct{}
	once sync.Once
}

// NewPersistentLogger opens (or creates) config.FilePath.
func NewPersistentLogger(config LogConfig) (*PersistentLogger, error) {
	logDir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	base := filepath.Base(config.FilePath)
	pl := &PersistentLogger{
		config: config,
		logDir: logDir,
		prefix: strings.TrimSuffix(base, filepath.Ext(base)),
		stop:   make(chan struct{}),
	}
	if err := pl.open(); err != nil {
		return nil, err
	}

	go pl.cleanupLoop()
	return pl, nil
}

// Write 实现 io.Writer
func (pl *PersistentLogger) Write(p []byte) (int, error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.file == nil {
		return 0, os.ErrClosed
	}
	limit := int64(pl.config.MaxSizeMB) * 1024 * 1024
	if limit > 0 && pl.size+int64(len(p)) > limit {
		if err := pl.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := pl.file.Write(p)
	pl.size += int64(n)
	return n, err
}

func (pl *PersistentLogger) open() error {
	f, err := os.OpenFile(pl.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	pl.file = f
	pl.size = info.Size()
	return nil
}

func (pl *PersistentLogger) rotatedName(t time.Time) string {
	return filepath.Join(pl.logDir, fmt.Sprintf("%s_%s.log", pl.prefix, t.Format("2006-01-02_15-04-05.000")))
}

func (pl *PersistentLogger) rotate() error {
	pl.file.Close()

	rotated := pl.rotatedName(time.Now())
	if err := os.Rename(pl.config.FilePath, rotated); err != nil {
		// 重命名失败就继续写原文件
		return pl.open()
	}
	if pl.config.Compress {
		go compressLogFile(rotated)
	}
	return pl.open()
}

// compressLogFile replaces path with path.gz.
func compressLogFile(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}

	gz := gzip.NewWriter(dst)
	_, err = io.Copy(gz, src)
	if cerr := gz.Close(); err == nil {
		err = cerr
	}
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path + ".gz")
		return err
	}
	src.Close()
	return os.Remove(path)
}

func (pl *PersistentLogger) cleanupLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	pl.cleanup(time.Now())
	for {
		select {
		case <-pl.stop:
			return
		case now := <-ticker.C:
			pl.cleanup(now)
		}
	}
}

// rotatedFiles returns rotated files, newest first.
func (pl *PersistentLogger) rotatedFiles() []string {
	matches, _ := filepath.Glob(filepath.Join(pl.logDir, pl.prefix+"_*.log*"))
	return sortByModTime(matches)
}

// cleanup removes rotated files older than MaxAgeDays or beyond MaxBackups.
func (pl *PersistentLogger) cleanup(now time.Time) {
	maxAge := time.Duration(pl.config.MaxAgeDays) * 24 * time.Hour
	for i, path := range pl.rotatedFiles() {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		tooOld := maxAge > 0 && now.Sub(info.ModTime()) > maxAge
		tooMany := pl.config.MaxBackups > 0 && i >= pl.config.MaxBackups
		if tooOld || tooMany {
			os.Remove(path)
		}
	}
}

// Close stops the cleanup goroutine and closes the file.
func (pl *PersistentLogger) Close() error {
	pl.once.Do(func() { close(pl.stop) })

	pl.mu.Lock()
	defer pl.mu.Unlock()
	if pl.file == nil {
		return nil
	}
	err := pl.file.Close()
	pl.file = nil
	return err
}

func sortByModTime(paths []string) []string {
	type entry struct {
		path string
		mod  time.Time
	}
	entries := make([]entry, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		entries = append(entries, entry{p, info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].mod.After(entries[j].mod)
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}

// ========================================
// 初始化
// ========================================

// InitLogger replaces the global Logger. The level is applied globally so
// SetLogLevel can change it later without rebuilding writers.
func InitLogger(config LogConfig) error {
	var writers []io.Writer

	out := config.ConsoleOut
	if out == nil {
		out = os.Stdout
	}
	if config.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	}

	if config.File && config.FilePath != "" {
		pl, err := NewPersistentLogger(config)
		if err != nil {
			return err
		}
		if persistentLogger != nil {
			persistentLogger.Close()
		}
		persistentLogger = pl
		writers = append(writers, pl)
	}

	if len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	}

	SetLogLevel(config.Level)
	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Caller().
		Logger()
	return nil
}

// SetLogLevel changes the level of every logger in the process.
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(level.zerologLevel())
}

// CloseLogger flushes and closes the log file, if any.
func CloseLogger() {
	if persistentLogger != nil {
		persistentLogger.Close()
		persistentLogger = nil
	}
}

// ========================================
// 便捷函数
// ========================================

func LogDebug(module string) *zerolog.Event { return Logger.Debug().Str("module", module) }
func LogInfo(module string) *zerolog.Event  { return Logger.Info().Str("module", module) }
func LogWarn(module string) *zerolog.Event  { return Logger.Warn().Str("module", module) }
func LogError(module string) *zerolog.Event { return Logger.Error().Str("module", module) }

// ModuleLogger returns a child logger tagged with module, for components
// that hold their own zerolog.Logger.
func ModuleLogger(module string) zerolog.Logger {
	return Logger.With().Str("module", module).Logger()
}

func DeviceLog() *zerolog.Event  { return LogInfo("device") }
func MirrorLog() *zerolog.Event  { return LogInfo("mirror") }
func MonitorLog() *zerolog.Event { return LogInfo("monitor") }

// ========================================
// 用户操作审计
// ========================================

// UserAction names an operation the user triggered.
type UserAction string

const (
	ActionDeviceConnect UserAction = "device_connect"
	ActionDevicePair    UserAction = "device_pair"
	ActionServerRestart UserAction = "server_restart"
	ActionDeviceLabel   UserAction = "device_label"
	ActionDevicePin     UserAction = "device_pin"

	ActionMirrorStart   UserAction = "mirror_start"
	ActionMirrorStop    UserAction = "mirror_stop"
	ActionScrcpyInstall UserAction = "scrcpy_install"

	ActionFilePull   UserAction = "file_pull"
	ActionFilePush   UserAction = "file_push"
	ActionFileDelete UserAction = "file_delete"
	ActionFileMove   UserAction = "file_move"
	ActionFileCopy   UserAction = "file_copy"
	ActionFolderNew  UserAction = "folder_create"

	ActionAppInstall   UserAction = "app_install"
	ActionAppUninstall UserAction = "app_uninstall"
	ActionAppEnable    UserAction = "app_enable"
	ActionAppDisable   UserAction = "app_disable"
	ActionAppClear     UserAction = "app_clear"
	ActionAppStop      UserAction = "app_force_stop"
	ActionAppLaunch    UserAction = "app_launch"

	ActionShellCommand UserAction = "shell_command"

	ActionTouch        UserAction = "touch"
	ActionBrightness   UserAction = "brightness"
	ActionWifiToggle   UserAction = "wifi_toggle"
	ActionBTToggle     UserAction = "bluetooth_toggle"
	ActionBatterySim   UserAction = "battery_simulate"
	ActionBatteryReset UserAction = "battery_reset"
	ActionVibrate      UserAction = "vibrate"

	ActionSettingsChange UserAction = "settings_change"
)

// addFields attaches details with typed setters where zerolog has one.
func addFields(event *zerolog.Event, details map[string]interface{}) *zerolog.Event {
	for k, v := range details {
		switch val := v.(type) {
		case string:
			event.Str(k, val)
		case int:
			event.Int(k, val)
		case int64:
			event.Int64(k, val)
		case float64:
			event.Float64(k, val)
		case bool:
			event.Bool(k, val)
		case time.Duration:
			event.Dur(k, val)
		case error:
			event.AnErr(k, val)
		default:
			event.Interface(k, val)
		}
	}
	return event
}

// LogUserAction writes one audit line.
func LogUserAction(action UserAction, deviceID string, details map[string]interface{}) {
	event := Logger.Info().
		Str("category", "user_interaction").
		Str("action", string(action)).
		Str("device_id", deviceID)
	addFields(event, details).Msg("User action")
}

// AppState 应用状态
type AppState string

const (
	StateStarting     AppState = "starting"
	StateReady        AppState = "ready"
	StateShuttingDown AppState = "shutting_down"
)

func LogAppState(state AppState, details map[string]interface{}) {
	event := Logger.Info().Str("category", "app_state").Str("state", string(state))
	addFields(event, details).Msg("App state changed")
}

// LogPanic records a recovered panic; the device monitor uses it so a
// parser bug never takes the GUI down.
func LogPanic(module string, recovered interface{}, stack string) {
	Logger.Error().
		Str("module", module).
		Str("category", "panic").
		Interface("recovered", recovered).
		Str("stack", stack).
		Msg("Panic recovered")
}

// ========================================
// 性能计时
// ========================================

// OperationTimer logs how long an operation took.
type OperationTimer struct {
	module    string
	operation string
	start     time.Time
	details   map[string]interface{}
}

func StartOperation(module, operation string) *OperationTimer {
	return &OperationTimer{
		module:    module,
		operation: operation,
		start:     time.Now(),
		details:   make(map[string]interface{}),
	}
}

func (t *OperationTimer) AddDetail(key string, value interface{}) *OperationTimer {
	t.details[key] = value
	return t
}

func (t *OperationTimer) event(e *zerolog.Event) *zerolog.Event {
	d := time.Since(t.start)
	e.Str("module", t.module).
		Str("category", "performance").
		Str("operation", t.operation).
		Dur("duration", d).
		Int64("duration_ms", d.Milliseconds())
	return addFields(e, t.details)
}

func (t *OperationTimer) End() {
	t.event(Logger.Info()).Msg("Operation completed")
}

func (t *OperationTimer) EndWithError(err error) {
	t.event(Logger.Error()).Err(err).Msg("Operation failed")
}

// Finish picks End or EndWithError.
func (t *OperationTimer) Finish(err error) {
	if err != nil {
		t.EndWithError(err)
		return
	}
	t.End()
}

// ========================================
// 日志文件查询 (前端调用)
// ========================================

func GetLogFilePath() string {
	if persistentLogger != nil {
		return persistentLogger.config.FilePath
	}
	return ""
}

// ListLogFiles returns the live file followed by rotated ones, newest first.
func ListLogFiles() ([]string, error) {
	if persistentLogger == nil {
		return nil, fmt.Errorf("persistent logger not initialized")
	}
	return append([]string{persistentLogger.config.FilePath}, persistentLogger.rotatedFiles()...), nil
}

// ReadRecentLogs returns the last n lines of the live log file.
func ReadRecentLogs(n int) ([]string, error) {
	if persistentLogger == nil {
		return nil, fmt.Errorf("persistent logger not initialized")
	}
	content, err := os.ReadFile(persistentLogger.config.FilePath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func init() {
	_ = InitLogger(DefaultLogConfig())
}
