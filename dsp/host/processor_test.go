package host

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/effects/reverb"
	"github.com/cwbudde/dsp256/dsp/pool"
	"github.com/cwbudde/dsp256/internal/testutil"
)

func newTestRack(t *testing.T) *Rack {
	t.Helper()

	r, err := NewDefaultRack(pool.WithSeed(1))
	if err != nil {
		t.Fatalf("NewDefaultRack: %v", err)
	}
	return r
}

func newReverb(t *testing.T, r *Rack) (*Processor, *reverb.Hall) {
	t.Helper()

	h, err := reverb.New()
	if err != nil {
		t.Fatalf("reverb.New: %v", err)
	}
	p := r.NewProcessor(h)
	if err := p.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return p, h
}

func TestNewProcessorAssignsEffectIDs(t *testing.T) {
	r := newTestRack(t)

	_, a := newReverb(t, r)
	_, b := newReverb(t, r)

	if a.EffectID() != 0 || b.EffectID() != 1 {
		t.Fatalf("effect ids = %d, %d", a.EffectID(), b.EffectID())
	}
}

func TestProcessorStartsFromModuleValues(t *testing.T) {
	p, h := newReverb(t, newTestRack(t))

	for i := range h.ParameterCount() {
		if got, want := p.Parameter(i), float64(h.Parameter(i)); got != want {
			t.Fatalf("parameter %d = %v, want %v", i, got, want)
		}
	}
}

func TestPrepareValidates(t *testing.T) {
	p, h := newReverb(t, newTestRack(t))

	if err := p.Prepare(core.WithSampleRate(0)); !errors.Is(err, core.ErrInvalidSampleRate) {
		t.Fatalf("Prepare(rate 0): %v", err)
	}
	if err := p.Prepare(core.WithBlockSize(-1)); !errors.Is(err, core.ErrInvalidBlockSize) {
		t.Fatalf("Prepare(block -1): %v", err)
	}
	if err := p.Prepare(core.WithSampleRate(1e9)); !errors.Is(err, reverb.ErrDelayMemory) {
		t.Fatalf("Prepare(rate 1e9): %v", err)
	}

	if err := p.Prepare(core.WithSampleRate(48000), core.WithBlockSize(128)); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if h.SampleRate() != 48000 || p.Config().BlockSize != 128 {
		t.Fatalf("config = %+v", p.Config())
	}
	if p.rack.Pool().SampleRate() != 48000 {
		t.Fatal("pool sample rate not updated")
	}
}

func TestSetParameterReachesModuleAtBlockStart(t *testing.T) {
	p, h := newReverb(t, newTestRack(t))

	p.SetParameter(reverb.ParamMix, 0.25)
	p.SetParameter(reverb.ParamDecay, 7)
	p.SetParameter(reverb.ParamDamping, math.NaN())
	p.SetParameter(42, 1)

	if h.Parameter(reverb.ParamMix) != 0.5 {
		t.Fatal("parameter applied before the block")
	}

	if err := p.ProcessBlock(make([]float64, 16), make([]float64, 16)); err != nil {
		t.Fatal(err)
	}

	if h.Parameter(reverb.ParamMix) != 0.25 {
		t.Fatalf("mix = %v", h.Parameter(reverb.ParamMix))
	}
	if h.Parameter(reverb.ParamDecay) != 1 || p.Parameter(reverb.ParamDecay) != 1 {
		t.Fatal("out-of-range value not clamped")
	}
	if h.Parameter(reverb.ParamDamping) != 0 {
		t.Fatal("NaN not mapped to zero")
	}
}

func TestProcessBlockLengthMismatch(t *testing.T) {
	p, _ := newReverb(t, newTestRack(t))

	err := p.ProcessBlock(make([]float64, 4), make([]float64, 5))
	if !errors.Is(err, ErrBlockLength) {
		t.Fatalf("got %v want ErrBlockLength", err)
	}
}

func TestProcessBlockDryIsQuantizedInput(t *testing.T) {
	p, _ := newReverb(t, newTestRack(t))
	p.SetParameter(reverb.ParamMix, 0)

	in := testutil.DeterministicNoise(9, 0.8, 512)
	left := append([]float64(nil), in...)
	right := append([]float64(nil), in...)
	if err := p.ProcessBlock(left, right); err != nil {
		t.Fatal(err)
	}

	want := testutil.Dequantize(testutil.Quantize(in))
	testutil.RequireSliceNearlyEqual(t, left, want, 0)
	testutil.RequireSliceNearlyEqual(t, right, want, 0)
}

func TestMonoBus(t *testing.T) {
	r := newTestRack(t)
	mono, _ := newReverb(t, r)
	stereo, _ := newReverb(t, NewRack(nil))

	in := testutil.Impulse(2048, 0, 0.5)
	left := append([]float64(nil), in...)
	l2 := append([]float64(nil), in...)
	r2 := append([]float64(nil), in...)

	if err := mono.ProcessBlock(left, nil); err != nil {
		t.Fatal(err)
	}
	if err := stereo.ProcessBlock(l2, r2); err != nil {
		t.Fatal(err)
	}

	// A mono bus is the stereo case with a mirrored input.
	testutil.RequireSliceNearlyEqual(t, left, l2, 0)
}

func TestModulationTicks(t *testing.T) {
	p, h := newReverb(t, newTestRack(t))

	if err := p.ProcessBlock(make([]float64, 100), nil); err != nil {
		t.Fatal(err)
	}
	if got := h.LFOPhase(); got != 0.05 {
		t.Fatalf("phase after 100 samples = %v, want one tick", got)
	}

	// The counter carries across blocks: 36 more samples complete tick two.
	if err := p.ProcessBlock(make([]float64, 28), nil); err != nil {
		t.Fatal(err)
	}
	if got := h.LFOPhase(); got != float32(0.05)+float32(0.05) {
		t.Fatalf("phase after 128 samples = %v, want two ticks", got)
	}
	if p.Samples() != 128 {
		t.Fatalf("Samples = %d", p.Samples())
	}
}

func TestLevels(t *testing.T) {
	p, _ := newReverb(t, newTestRack(t))
	p.SetParameter(reverb.ParamMix, 0)

	left := []float64{0.1, -0.5, 0.25}
	right := []float64{0, 0.75, 0}
	if err := p.ProcessBlock(left, right); err != nil {
		t.Fatal(err)
	}

	in, out := p.Levels()
	if in != 0.75 || out != 0.75 {
		t.Fatalf("levels = %v, %v", in, out)
	}
}

func TestLoadPresetPushesValuesBack(t *testing.T) {
	p, h := newReverb(t, newTestRack(t))

	names := p.Presets()
	if len(names) != 8 || names[2] != "Large Hall" {
		t.Fatalf("Presets = %v", names)
	}
	if p.PresetName(5) != "Ambient" || p.PresetName(8) != "Program 9" {
		t.Fatal("PresetName mismatch")
	}

	if err := p.LoadPreset(2); err != nil {
		t.Fatal(err)
	}
	// Large Hall carries size 1.2; host and module agree on the clamped value.
	if p.Parameter(reverb.ParamSize) != 1 || h.Parameter(reverb.ParamSize) != 1 {
		t.Fatalf("size = %v / %v", p.Parameter(reverb.ParamSize), h.Parameter(reverb.ParamSize))
	}
	if p.Parameter(reverb.ParamDecay) != float64(float32(0.8)) {
		t.Fatalf("decay = %v", p.Parameter(reverb.ParamDecay))
	}

	if err := p.LoadPreset(99); !errors.Is(err, ErrPresetIndex) {
		t.Fatalf("LoadPreset(99): %v", err)
	}
}

func TestStatus(t *testing.T) {
	p, _ := newReverb(t, newTestRack(t))
	if got := p.Status(); got != "RT60: 2.5s  Tail: -100.0 dB" {
		t.Fatalf("Status = %q", got)
	}
	if got := p.ParameterDisplay(reverb.ParamDecay); got != "2.5 s" {
		t.Fatalf("ParameterDisplay = %q", got)
	}
}

func TestReleaseAndReset(t *testing.T) {
	p, _ := newReverb(t, newTestRack(t))

	p.ReleaseResources()
	if err := p.ProcessBlock(testutil.DC(0.1, 64), nil); err != nil {
		t.Fatal(err)
	}

	if err := p.Prepare(); err != nil {
		t.Fatal(err)
	}
	p.Reset()

	left := make([]float64, 256)
	if err := p.ProcessBlock(left, nil); err != nil {
		t.Fatal(err)
	}
	for i, v := range left {
		if v != 0 {
			t.Fatalf("sample %d = %v after reset", i, v)
		}
	}
}

func TestSharedRackSerializesProcessors(t *testing.T) {
	r := newTestRack(t)
	a, _ := newReverb(t, r)
	b, _ := newReverb(t, r)

	var wg sync.WaitGroup
	for _, p := range []*Processor{a, b} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				block := testutil.DeterministicNoise(3, 0.5, 256)
				if err := p.ProcessBlock(block, nil); err != nil {
					t.Error(err)
					return
				}
				p.SetParameter(reverb.ParamMix, 0.3)
			}
		}()
	}
	wg.Wait()

	if a.Samples() != 5120 || b.Samples() != 5120 {
		t.Fatalf("samples = %d, %d", a.Samples(), b.Samples())
	}
}
