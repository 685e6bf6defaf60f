package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime/debug"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"adbdesk/pkg/adb"
	"adbdesk/pkg/dumpsys"
	"adbdesk/pkg/types"
)

// ========================================
// Device Monitor - adb track-devices 监听
// ========================================

// trackStream opens one `adb track-devices` stream. Closing it ends the
// underlying process.
type trackStream func(ctx context.Context) (io.ReadCloser, error)

var errStreamEnded = errors.New("track-devices stream ended")

// DeviceMonitor follows the adb server's device list and calls notify with
// the latest list once changes settle. When adb exits (server restart,
// binary replaced) the stream is reopened with backoff.
type DeviceMonitor struct {
	open     trackStream
	notify   func([]types.Device)
	debounce time.Duration

	attempts     uint
	initialDelay time.Duration
	maxDelay     time.Duration
	cooldown     time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDeviceMonitor(open trackStream, notify func([]types.Device)) *DeviceMonitor {
	return &DeviceMonitor{
		open:         open,
		notify:       notify,
		debounce:     300 * time.Millisecond,
		attempts:     5,
		initialDelay: 500 * time.Millisecond,
		maxDelay:     10 * time.Second,
		cooldown:     30 * time.Second,
	}
}

// Start replaces any running monitor.
func (m *DeviceMonitor) Start(parent context.Context) {
	m.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop blocks until the monitor goroutine has exited.
func (m *DeviceMonitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (m *DeviceMonitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

func (m *DeviceMonitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	MonitorLog().Msg("Device monitor started")
	defer MonitorLog().Msg("Device monitor stopped")

	for ctx.Err() == nil {
		err := retry.Do(func() error {
			return m.session(ctx)
		},
			retry.Context(ctx),
			retry.Attempts(m.attempts),
			retry.Delay(m.initialDelay),
			retry.MaxDelay(m.maxDelay),
			retry.OnRetry(func(n uint, err error) {
				LogWarn("monitor").Uint("attempt", n+1).Err(err).Msg("Restarting track-devices")
			}),
		)
		if ctx.Err() != nil {
			return
		}
		LogError("monitor").Err(err).Dur("cooldown", m.cooldown).Msg("track-devices keeps failing")
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.cooldown):
		}
	}
}

// session reads frames until the stream breaks. It always returns an error
// so the supervisor reopens the stream.
func (m *DeviceMonitor) session(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			LogPanic("monitor", r, string(debug.Stack()))
			err = fmt.Errorf("track-devices session panicked: %v", r)
		}
	}()

	stream, err := m.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to start track-devices: %w", err)
	}
	defer stream.Close()
	// a blocked frame read only returns once the stream is closed
	stopClose := context.AfterFunc(ctx, func() { stream.Close() })
	defer stopClose()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		payload, err := dumpsys.ReadTrackFrame(stream)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return errStreamEnded
			}
			return err
		}

		devices := dumpsys.ParseTrackDevices(payload)
		LogDebug("monitor").Int("count", len(devices)).Msg("track-devices frame")

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(m.debounce, func() {
			if ctx.Err() == nil {
				m.notify(devices)
			}
		})
	}
}

// adbTrackDevices spawns `adb track-devices` with the path current at each
// (re)start.
func adbTrackDevices(path func() string) trackStream {
	return func(ctx context.Context) (io.ReadCloser, error) {
		bin := path()
		if bin == "" {
			return nil, adb.ErrNoAdb
		}
		cmd := exec.CommandContext(ctx, bin, "track-devices")
		cmd.Env = adb.CleanEnv()
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, err
		}
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return &processStream{ReadCloser: stdout, cmd: cmd}, nil
	}
}

type processStream struct {
	io.ReadCloser
	cmd  *exec.Cmd
	once sync.Once
	err  error
}

func (p *processStream) Close() error {
	p.once.Do(func() {
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		p.err = p.cmd.Wait()
	})
	return p.err
}
