package delay

import (
	"errors"
	"testing"
)

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d): got %v want ErrInvalidSize", size, err)
		}
	}
}

func TestNilLine(t *testing.T) {
	var d *Line
	if d.Len() != 0 {
		t.Fatalf("Len: got %d want 0", d.Len())
	}
	if d.Fits(1) {
		t.Fatal("nil line must not fit any offset")
	}
	d.Reset()
}

// --- Process ---

func TestProcessDelaysByOffset(t *testing.T) {
	d, err := New(10)
	if err != nil {
		t.Fatal(err)
	}

	const offset = 3
	for i := range 30 {
		got := d.Process(float32(i+1), offset)
		var want float32
		if i >= offset {
			want = float32(i + 1 - offset)
		}
		if got != want {
			t.Fatalf("sample %d: got %v want %v", i, got, want)
		}
	}
}

func TestProcessZeroOffsetPassesThrough(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 9 {
		if got := d.Process(float32(i), 0); got != float32(i) {
			t.Fatalf("sample %d: got %v", i, got)
		}
	}
}

func TestFits(t *testing.T) {
	d, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		offset int
		want   bool
	}{
		{-1, false},
		{0, true},
		{9, true},
		{10, false},
	}
	for _, tt := range tests {
		if got := d.Fits(tt.offset); got != tt.want {
			t.Fatalf("Fits(%d): got %v want %v", tt.offset, got, tt.want)
		}
	}
}

func TestReset(t *testing.T) {
	d, err := New(5)
	if err != nil {
		t.Fatal(err)
	}
	for range 7 {
		d.Process(1, 2)
	}
	d.Reset()

	if got := d.Process(0, 4); got != 0 {
		t.Fatalf("after reset: got %v want 0", got)
	}
}
