package module

import (
	"errors"
	"testing"
)

func TestCheckPreset(t *testing.T) {
	if err := CheckPreset(Preset{Values: []float32{1, 2}}, 2); err != nil {
		t.Fatalf("CheckPreset: %v", err)
	}
	if err := CheckPreset(Preset{Name: "short", Values: []float32{1}}, 2); !errors.Is(err, ErrPresetSize) {
		t.Fatalf("CheckPreset short: got %v want ErrPresetSize", err)
	}
}

func TestLoadShortPresetLeavesValues(t *testing.T) {
	m := &stubModule{}
	m.SetParameter(0, 0.5)

	if err := m.LoadPreset(Preset{Values: []float32{1}}); !errors.Is(err, ErrPresetSize) {
		t.Fatalf("LoadPreset: got %v", err)
	}
	if m.Parameter(0) != 0.5 {
		t.Fatalf("short preset was partially applied: %v", m.Parameter(0))
	}
}

func TestFindPreset(t *testing.T) {
	m := &stubModule{}

	tests := []struct {
		name string
		want int
	}{
		{"Unity", 0},
		{"quiet", 1},
		{"  QUIET ", 1},
	}
	for _, tt := range tests {
		got, err := FindPreset(m, tt.name)
		if err != nil || got != tt.want {
			t.Fatalf("FindPreset(%q) = %d, %v; want %d", tt.name, got, err, tt.want)
		}
	}

	if _, err := FindPreset(m, "Loud"); !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("FindPreset(Loud): got %v", err)
	}
}

func TestFindParameter(t *testing.T) {
	m := &stubModule{}

	if i, ok := FindParameter(m, "TRIM"); !ok || i != 1 {
		t.Fatalf("FindParameter(TRIM) = %d, %v", i, ok)
	}
	if i, ok := FindParameter(m, "Gain"); !ok || i != 0 {
		t.Fatalf("FindParameter(Gain) = %d, %v", i, ok)
	}
	if _, ok := FindParameter(m, "pan"); ok {
		t.Fatal("FindParameter(pan) should miss")
	}
}
