// Package mirror runs scrcpy screen-mirroring sessions.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"adbdesk/pkg/adb"
	"adbdesk/pkg/types"
)

// EventSessionEnded is emitted once per session when scrcpy exits.
const EventSessionEnded = "scrcpy-response"

var ErrNoSession = errors.New("no mirroring session for device")

// Emitter delivers events to whatever front end is attached.
type Emitter interface {
	Emit(name string, data ...interface{})
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(name string, data ...interface{})

func (f EmitterFunc) Emit(name string, data ...interface{}) { f(name, data...) }

type session struct {
	info   types.MirrorSession
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager starts, tracks and stops scrcpy processes.
type Manager struct {
	// Path returns the scrcpy executable; it is consulted on every start so
	// config changes apply to the next session.
	Path    func() string
	Emitter Emitter
	// Runner runs the short-lived version and install commands.
	Runner adb.Runner
	Log    zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager returns a manager emitting through e.
func NewManager(path func() string, e Emitter, log zerolog.Logger) *Manager {
	return &Manager{
		Path:     path,
		Emitter:  e,
		Runner:   adb.ExecRunner{},
		Log:      log,
		sessions: make(map[string]*session),
	}
}

// Start spawns `scrcpy -s <serial>` and returns immediately. scrcpy loads
// libraries and the server jar from its own directory, so an absolute path
// also sets the working directory.
func (m *Manager) Start(serial string) (string, error) {
	if err := adb.ValidateDeviceID(serial); err != nil {
		return "", err
	}
	bin := m.Path()

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, bin, "-s", serial)
	cmd.Env = adb.CleanEnv()
	if filepath.IsAbs(bin) {
		cmd.Dir = filepath.Dir(bin)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return "", fmt.Errorf("failed to start scrcpy at %s: %w", bin, err)
	}

	pid := cmd.Process.Pid
	s := &session{
		info: types.MirrorSession{
			ID:        uuid.New().String(),
			Serial:    serial,
			PID:       pid,
			StartedAt: time.Now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m.mu.Lock()
	m.sessions[s.info.ID] = s
	m.mu.Unlock()

	m.Log.Info().Str("serial", serial).Int("pid", pid).Str("session", s.info.ID).Msg("mirroring started")

	go m.watch(cmd, s)

	return fmt.Sprintf("Mirroring Active (PID: %d)", pid), nil
}

func (m *Manager) watch(cmd *exec.Cmd, s *session) {
	err := cmd.Wait()
	s.cancel()

	m.mu.Lock()
	delete(m.sessions, s.info.ID)
	m.mu.Unlock()

	ev := m.Log.Info()
	if err != nil {
		ev = m.Log.Warn().Err(err)
	}
	ev.Str("serial", s.info.Serial).Int("pid", s.info.PID).
		Dur("duration", time.Since(s.info.StartedAt)).Msg("mirroring ended")

	if m.Emitter != nil {
		m.Emitter.Emit(EventSessionEnded, fmt.Sprintf("Session ended (PID: %d)", s.info.PID))
	}
	close(s.done)
}

// Stop kills every session for serial and waits for their watchers.
func (m *Manager) Stop(serial string) error {
	m.mu.Lock()
	var stopping []*session
	for _, s := range m.sessions {
		if s.info.Serial == serial {
			stopping = append(stopping, s)
		}
	}
	m.mu.Unlock()

	if len(stopping) == 0 {
		return ErrNoSession
	}
	for _, s := range stopping {
		s.cancel()
	}
	for _, s := range stopping {
		<-s.done
	}
	return nil
}

// StopAll kills every session; used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	all := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.Unlock()

	for _, s := range all {
		s.cancel()
	}
	for _, s := range all {
		<-s.done
	}
}

// Sessions lists live sessions, oldest first.
func (m *Manager) Sessions() []types.MirrorSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]types.MirrorSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s.info)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].StartedAt.Before(list[j].StartedAt)
	})
	return list
}

// Check reports whether scrcpy runs at all.
func (m *Manager) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	res, err := m.Runner.Run(ctx, m.Path(), "--version")
	return err == nil && res.Success()
}

// Install tries the platform package manager.
func (m *Manager) Install(ctx context.Context) (string, error) {
	return m.install(ctx, runtime.GOOS)
}

func (m *Manager) install(ctx context.Context, goos string) (string, error) {
	switch goos {
	case "darwin":
		if res, err := m.Runner.Run(ctx, "which", "brew"); err != nil || !res.Success() {
			return "", errors.New("Homebrew not found. Please install Homebrew or install scrcpy manually.")
		}
		res, err := m.Runner.Run(ctx, "brew", "install", "scrcpy")
		if err != nil {
			return "", fmt.Errorf("failed to execute installation command: %w", err)
		}
		if !res.Success() {
			return "", fmt.Errorf("Installation failed: %s", res.Stderr)
		}
		return "scrcpy installed successfully", nil

	case "windows":
		res, err := m.Runner.Run(ctx, "winget", "install", "Genymobile.Scrcpy")
		if err != nil {
			return "", fmt.Errorf("failed to execute winget: %w", err)
		}
		if !res.Success() {
			return "", errors.New("Installation failed. Please install 'Genymobile.Scrcpy' manually via Winget or download from GitHub.")
		}
		return "scrcpy installed successfully", nil

	default:
		return "", errors.New("Automatic installation not supported on Linux. Please install 'scrcpy' via your package manager (apt, dnf, pacman).")
	}
}
