package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"adbdesk/pkg/types"
)

func newTestStore(t *testing.T) *MetadataStore {
	t.Helper()
	s, err := NewMetadataStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMetadataStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMetadataPutGet(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Get("emulator-5554"); err != ErrMetadataNotFound {
		t.Fatalf("Expected ErrMetadataNotFound, got %v", err)
	}

	saved, err := s.Put(types.DeviceMetadata{Serial: "emulator-5554", Label: "Test phone", Icon: "phone", Color: "#22AA55"})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be stamped")
	}

	got, err := s.Get("emulator-5554")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(saved, got, cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	saved.Label = "Renamed"
	if _, err := s.Put(saved); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	list, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Label != "Renamed" {
		t.Errorf("Expected one updated row, got %+v", list)
	}

	if err := s.Delete("emulator-5554"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("emulator-5554"); err != ErrMetadataNotFound {
		t.Errorf("Expected row to be gone, got %v", err)
	}
}

func TestMetadataValidation(t *testing.T) {
	s := newTestStore(t)
	long := make([]rune, 65)
	for i := range long {
		long[i] = 'x'
	}
	tests := []struct {
		name string
		m    types.DeviceMetadata
	}{
		{"bad serial", types.DeviceMetadata{Serial: "a;rm -rf"}},
		{"empty serial", types.DeviceMetadata{}},
		{"long label", types.DeviceMetadata{Serial: "abc", Label: string(long)}},
		{"bad color", types.DeviceMetadata{Serial: "abc", Color: "green"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Put(tt.m); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestKnownDevices(t *testing.T) {
	s := newTestStore(t)
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	if err := s.RecordSeen("emulator-5554", "sdk_gphone64", t0); err != nil {
		t.Fatalf("RecordSeen failed: %v", err)
	}
	s.RecordSeen("192.168.1.20:5555", "Pixel 7", t0.Add(time.Minute))
	s.RecordSeen("emulator-5554", "", t0.Add(2*time.Minute))

	got, err := s.KnownDevices()
	if err != nil {
		t.Fatalf("KnownDevices failed: %v", err)
	}
	want := []types.KnownDevice{
		{Serial: "emulator-5554", Model: "sdk_gphone64", FirstSeen: t0, LastSeen: t0.Add(2 * time.Minute)},
		{Serial: "192.168.1.20:5555", Model: "Pixel 7", FirstSeen: t0.Add(time.Minute), LastSeen: t0.Add(time.Minute)},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("KnownDevices mismatch (-want +got):\n%s", diff)
	}

	s.Put(types.DeviceMetadata{Serial: "emulator-5554", Label: "emu"})
	if err := s.Forget("emulator-5554"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	got, _ = s.KnownDevices()
	if len(got) != 1 {
		t.Errorf("Expected one known device after Forget, got %d", len(got))
	}
	if _, err := s.Get("emulator-5554"); err != ErrMetadataNotFound {
		t.Errorf("Forget must drop metadata too, got %v", err)
	}
}

func TestMetadataPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewMetadataStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	s.Put(types.DeviceMetadata{Serial: "R58M123", Label: "Galaxy"})
	s.Close()

	r, err := NewMetadataStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if m, err := r.Get("R58M123"); err != nil || m.Label != "Galaxy" {
		t.Errorf("Get after reopen = %+v, %v", m, err)
	}
}
