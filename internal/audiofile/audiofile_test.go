package audiofile

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		tol      float64
	}{
		{"16-bit", 16, 1.0 / 32768},
		{"24-bit", 24, 1.0 / 8388608},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newClip(256, 48000)
			for i := range in.Len() {
				in.Left[i] = 0.5 * math.Sin(2*math.Pi*float64(i)/64)
				in.Right[i] = -0.25 * math.Cos(2*math.Pi*float64(i)/32)
			}

			path := filepath.Join(t.TempDir(), "clip.wav")
			if err := SaveWAV(path, in, tt.bitDepth); err != nil {
				t.Fatalf("SaveWAV: %v", err)
			}

			out, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if out.SampleRate != 48000 || out.Len() != in.Len() {
				t.Fatalf("got %d frames at %d Hz", out.Len(), out.SampleRate)
			}
			for i := range in.Len() {
				if math.Abs(out.Left[i]-in.Left[i]) > tt.tol || math.Abs(out.Right[i]-in.Right[i]) > tt.tol {
					t.Fatalf("frame %d: got (%v, %v), want (%v, %v)",
						i, out.Left[i], out.Right[i], in.Left[i], in.Right[i])
				}
			}
		})
	}
}

func TestSaveClips(t *testing.T) {
	in := &Clip{Left: []float64{2, -2, math.NaN()}, Right: []float64{0, 0, 0}, SampleRate: 8000}

	path := filepath.Join(t.TempDir(), "hot.wav")
	if err := SaveWAV(path, in, 16); err != nil {
		t.Fatal(err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{32767.0 / 32768, -1, 0}
	for i, w := range want {
		if out.Left[i] != w {
			t.Fatalf("frame %d: got %v, want %v", i, out.Left[i], w)
		}
	}
}

func TestSaveValidation(t *testing.T) {
	dir := t.TempDir()
	good := newClip(4, 44100)

	tests := []struct {
		name     string
		clip     *Clip
		bitDepth int
		want     error
	}{
		{"nil clip", nil, 16, ErrInvalidFile},
		{"ragged", &Clip{Left: make([]float64, 2), Right: make([]float64, 3), SampleRate: 44100}, 16, ErrInvalidFile},
		{"no rate", &Clip{Left: make([]float64, 2), Right: make([]float64, 2)}, 16, ErrInvalidFile},
		{"8-bit", good, 8, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SaveWAV(filepath.Join(dir, "x.wav"), tt.clip, tt.bitDepth)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "song.mp3")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("mp3: %v", err)
	}

	junk := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(junk, []byte("definitely not RIFF data"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(junk); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("junk wav: %v", err)
	}

	junkFLAC := filepath.Join(dir, "junk.flac")
	if err := os.WriteFile(junkFLAC, []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(junkFLAC); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("junk flac: %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.wav")); err == nil {
		t.Fatal("missing file loaded")
	}
}

func TestPCMScale(t *testing.T) {
	tests := []struct {
		depth  int
		scale  float64
		offset int
	}{
		{8, 128, 128},
		{16, 32768, 0},
		{24, 8388608, 0},
		{32, 2147483648, 0},
	}

	for _, tt := range tests {
		scale, offset, err := pcmScale(tt.depth)
		if err != nil || scale != tt.scale || offset != tt.offset {
			t.Fatalf("pcmScale(%d) = %v, %v, %v", tt.depth, scale, offset, err)
		}
	}
	if _, _, err := pcmScale(12); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("12-bit: %v", err)
	}
}

func TestClipSeconds(t *testing.T) {
	c := newClip(22050, 44100)
	if c.Seconds() != 0.5 {
		t.Fatalf("Seconds = %v", c.Seconds())
	}
	if (&Clip{}).Seconds() != 0 {
		t.Fatal("zero clip has duration")
	}
}
