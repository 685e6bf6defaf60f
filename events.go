package main

import (
	"context"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// 前端事件名
const (
	EventDevicesChanged = "devices-changed"
	EventScrcpyResponse = "scrcpy-response"
	EventConfigChanged  = "config-changed"
)

// EventSink receives every event the backend emits.
type EventSink interface {
	Emit(name string, data ...interface{})
}

// EventBus fans events out to the attached front ends: the Wails window,
// websocket clients, or nothing at all in MCP mode.
type EventBus struct {
	mu    sync.RWMutex
	sinks []EventSink
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Add(s EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, s)
}

// Emit satisfies mirror.Emitter as well.
func (b *EventBus) Emit(name string, data ...interface{}) {
	b.mu.RLock()
	sinks := append([]EventSink(nil), b.sinks...)
	b.mu.RUnlock()

	LogDebug("events").Str("event", name).Int("sinks", len(sinks)).Msg("Emit")
	for _, s := range sinks {
		s.Emit(name, data...)
	}
}

// wailsSink forwards to the window through the Wails runtime.
type wailsSink struct {
	ctx context.Context
}

func (w wailsSink) Emit(name string, data ...interface{}) {
	wailsRuntime.EventsEmit(w.ctx, name, data...)
}
