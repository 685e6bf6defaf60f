package dumpsys

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColumns(t *testing.T) {
	got := Columns("0x0001) | BMI260 Accelerometer | Bosch |", "|")
	want := []string{"0x0001)", "BMI260 Accelerometer", "Bosch", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
}

func TestField(t *testing.T) {
	f := Fields("  drwxr-xr-x   2 root  root ")
	if v, ok := Field(f, 3); !ok || v != "root" {
		t.Errorf("Field(3) = %q, %v", v, ok)
	}
	if _, ok := Field(f, 4); ok {
		t.Error("Field(4) should be absent")
	}
	if _, ok := Field(f, -1); ok {
		t.Error("Field(-1) should be absent")
	}
}

func TestAfter(t *testing.T) {
	tests := []struct {
		line, marker string
		want         string
		ok           bool
	}{
		{"Physical size: 1080x2400", "Physical size:", "1080x2400", true},
		{"renderFrameRate = 120.0", "=", "120.0", true},
		{"no marker here", ":", "", false},
	}
	for _, tt := range tests {
		got, ok := After(tt.line, tt.marker)
		if got != tt.want || ok != tt.ok {
			t.Errorf("After(%q, %q) = %q, %v; want %q, %v", tt.line, tt.marker, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("HDR10 HLG\r\nsecond"); got != "HDR10 HLG" {
		t.Errorf("FirstLine = %q", got)
	}
}
