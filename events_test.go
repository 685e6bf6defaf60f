package main

import "testing"

func TestEventBus_FansOut(t *testing.T) {
	bus := NewEventBus()
	a, b := &recordingSink{}, &recordingSink{}
	bus.Add(a)
	bus.Add(b)

	bus.Emit(EventConfigChanged, "x", 1)

	for i, s := range []*recordingSink{a, b} {
		got := s.byName(EventConfigChanged)
		if len(got) != 1 || len(got[0].data) != 2 || got[0].data[0] != "x" {
			t.Errorf("sink %d got %+v", i, got)
		}
	}
}

func TestEventBus_NoSinks(t *testing.T) {
	NewEventBus().Emit(EventDevicesChanged)
}
