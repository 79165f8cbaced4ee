package host

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/fixed"
	"github.com/cwbudde/dsp256/dsp/module"
)

// TailSeconds is the reverb tail hint reported to hosts.
const TailSeconds = 2.0

var (
	// ErrBlockLength is returned when the channels of a block differ in length.
	ErrBlockLength = errors.New("host: channel lengths differ")
	// ErrPresetIndex is returned for an out-of-range program number.
	ErrPresetIndex = errors.New("host: preset index out of range")
)

// Processor runs one module on float blocks.
type Processor struct {
	rack *Rack
	mod  module.Module
	eng  *fixed.Engine
	cfg  core.ProcessorConfig

	// Host-side normalized values, written by control threads.
	params []atomicFloat

	modCounter int
	samples    uint64

	peakIn  atomicFloat
	peakOut atomicFloat
}

type atomicFloat struct {
	bits atomic.Uint64
}

func (a *atomicFloat) Load() float64   { return math.Float64frombits(a.bits.Load()) }
func (a *atomicFloat) Store(v float64) { a.bits.Store(math.Float64bits(v)) }

func newProcessor(r *Rack, m module.Module) *Processor {
	p := &Processor{
		rack:   r,
		mod:    m,
		eng:    fixed.NewEngine(),
		cfg:    core.DefaultProcessorConfig(),
		params: make([]atomicFloat, m.ParameterCount()),
	}
	for i := range p.params {
		p.params[i].Store(float64(m.Parameter(i)))
	}
	return p
}

// Module returns the wrapped module. Callers must not use it while blocks
// are processed.
func (p *Processor) Module() module.Module { return p.mod }

// Config returns the stream settings of the last successful Prepare.
func (p *Processor) Config() core.ProcessorConfig { return p.cfg }

// Prepare configures the stream. Defaults are 44.1 kHz and 512 samples.
func (p *Processor) Prepare(opts ...core.ProcessorOption) error {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("host: prepare: %w", err)
	}

	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	if err := p.mod.Prepare(cfg.SampleRate, cfg.BlockSize); err != nil {
		return fmt.Errorf("host: prepare %s: %w", p.mod.Name(), err)
	}

	p.eng.Prepare(cfg.SampleRate)
	if p.rack.pool != nil {
		p.rack.pool.Prepare(cfg.SampleRate)
	}

	p.cfg = cfg
	p.modCounter = 0
	p.samples = 0

	debug("prepared %s: rate=%.0f block=%d", p.mod.Name(), cfg.SampleRate, cfg.BlockSize)

	return nil
}

// ReleaseResources frees the module's buffers.
func (p *Processor) ReleaseResources() {
	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	p.mod.ReleaseResources()
}

// Reset clears the module state without touching parameters.
func (p *Processor) Reset() {
	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	p.mod.Reset()
	p.modCounter = 0
}

// SetParameter stores a normalized host value. It takes effect at the start
// of the next block. Safe for concurrent use.
func (p *Processor) SetParameter(index int, value float64) {
	if index < 0 || index >= len(p.params) {
		return
	}
	if math.IsNaN(value) {
		value = 0
	}
	p.params[index].Store(core.Clamp(value, 0, 1))
}

// Parameter returns the host value of a parameter.
func (p *Processor) Parameter(index int) float64 {
	if index < 0 || index >= len(p.params) {
		return 0
	}
	return p.params[index].Load()
}

// ProcessBlock processes left and right in place. A nil right is a mono
// bus: the module sees the left input on both channels and only left is
// written back.
func (p *Processor) ProcessBlock(left, right []float64) error {
	if right != nil && len(right) != len(left) {
		return fmt.Errorf("%w: %d and %d", ErrBlockLength, len(left), len(right))
	}

	p.peakIn.Store(max(maxAbs(left), maxAbs(right)))

	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	p.pushParameters()

	modulator, _ := p.mod.(module.Modulator)
	bus := p.rack.pool

	for i := range left {
		l := fixed.FromFloat(float32(left[i]))
		r := l
		if right != nil {
			r = fixed.FromFloat(float32(right[i]))
		}

		p.mod.Process(&l, &r, bus, p.eng)

		left[i] = float64(l.Float())
		if right != nil {
			right[i] = float64(r.Float())
		}

		p.samples++
		if p.modCounter++; p.modCounter >= module.ModulationInterval {
			if modulator != nil {
				modulator.UpdateModulation(p.modCounter)
			}
			p.modCounter = 0
		}
	}

	p.peakOut.Store(max(maxAbs(left), maxAbs(right)))

	return nil
}

func (p *Processor) pushParameters() {
	for i := range p.params {
		p.mod.SetParameter(i, float32(p.params[i].Load()))
	}
}

// Samples returns how many samples were processed since Prepare.
func (p *Processor) Samples() uint64 {
	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	return p.samples
}

// Levels returns the input and output peaks of the last block.
func (p *Processor) Levels() (in, out float64) {
	return p.peakIn.Load(), p.peakOut.Load()
}

// Presets returns the module's factory preset names in program order.
func (p *Processor) Presets() []string {
	presets := p.mod.FactoryPresets()
	names := make([]string, len(presets))
	for i, pr := range presets {
		names[i] = pr.Name
	}
	return names
}

// PresetName returns the name of program index, or "Program N" when the
// index is out of range.
func (p *Processor) PresetName(index int) string {
	presets := p.mod.FactoryPresets()
	if index < 0 || index >= len(presets) {
		return fmt.Sprintf("Program %d", index+1)
	}
	return presets[index].Name
}

// LoadPreset applies factory program index.
func (p *Processor) LoadPreset(index int) error {
	presets := p.mod.FactoryPresets()
	if index < 0 || index >= len(presets) {
		return fmt.Errorf("%w: %d", ErrPresetIndex, index)
	}
	return p.LoadPresetValues(presets[index])
}

// LoadPresetValues applies preset and copies the module's resulting values
// back into the host parameters.
func (p *Processor) LoadPresetValues(preset module.Preset) error {
	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	if err := p.mod.LoadPreset(preset); err != nil {
		return fmt.Errorf("host: load preset: %w", err)
	}
	p.pullParameters()

	debug("loaded preset %q into %s", preset.Name, p.mod.Name())

	return nil
}

func (p *Processor) pullParameters() {
	for i := range p.params {
		p.params[i].Store(float64(p.mod.Parameter(i)))
	}
}

// ParameterDisplay formats a host value the way the module would show it.
func (p *Processor) ParameterDisplay(index int) string {
	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	return p.mod.ParameterDisplay(index)
}

// Status returns the module's realtime display, or "" if it has none.
func (p *Processor) Status() string {
	rd, ok := p.mod.(module.RealtimeDisplay)
	if !ok {
		return ""
	}

	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	return rd.RealtimeDisplay()
}

func maxAbs(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}
