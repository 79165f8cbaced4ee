package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/GeoffreyPlitt/debuggo"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/delay"
	"github.com/cwbudde/dsp256/dsp/fixed"
	"github.com/cwbudde/dsp256/dsp/module"
)

var debug = debuggo.Debug("dsp256:reverb")

const (
	name        = "Reverb Hall"
	description = "Classic hall reverb with warm, spacious character. Based on Schroeder-Moorer architecture."
	version     = 1

	// MaxDelayCells is the delay memory, in samples, one engine may claim.
	MaxDelayCells = 1 << 22

	lfoStep         = 0.05
	twoPi           = 6.28318530718
	rightWetScale   = 0.9
	tailDecay       = 0.999
	tailAttack      = 0.001
	tailFloorOffset = 1e-6
	tailFloorDB     = -100
)

// ErrDelayMemory is returned by Prepare when the requested sample rate needs
// more delay memory than MaxDelayCells.
var ErrDelayMemory = errors.New("reverb: delay memory exceeds ceiling")

// BusStats counts the engine's accesses to the shared pool.
type BusStats struct {
	Writes    uint64
	Reads     uint64
	Contended uint64
	// Last is the most recent sample read back through the bus.
	Last fixed.Sample
}

// Hall is the hall reverb engine. The zero value is not usable; call New.
type Hall struct {
	params [numParams]float32

	sampleRate float64
	blockSize  int
	effectID   int

	preDelay       *delay.Line
	preDelayOffset int
	early          [numEarly]earlyTap
	combs          [numCombs]comb
	allpass        [numAllpass]allpass

	alpha fixed.Sample
	rt60  float32

	dcState  float32
	lpfLeft  float32
	lpfRight float32
	lfoPhase float32
	tail     float32

	bus BusStats
}

var (
	_ module.Module          = (*Hall)(nil)
	_ module.Modulator       = (*Hall)(nil)
	_ module.RealtimeDisplay = (*Hall)(nil)
	_ module.BusClient       = (*Hall)(nil)
)

// New returns a hall reverb with default parameters, sized for 44.1 kHz
// and 512-sample blocks.
func New() (*Hall, error) {
	h := &Hall{
		params:     defaultParams(),
		sampleRate: core.DefaultSampleRate,
		blockSize:  core.DefaultBlockSize,
	}

	if err := h.allocate(planLayout(h.sampleRate, h.effectiveSize())); err != nil {
		return nil, err
	}
	h.updateCoefficients()

	return h, nil
}

// Name returns the display name.
func (h *Hall) Name() string { return name }

// Description returns a one-line summary.
func (h *Hall) Description() string { return description }

// Version returns the engine revision.
func (h *Hall) Version() int { return version }

// Prepare sizes the delay memory for sampleRate, derives coefficients and
// resets all state. The room size in effect at this point fixes the delay
// lengths until the next Prepare. On error the engine is left unchanged.
func (h *Hall) Prepare(sampleRate float64, blockSize int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: blockSize}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reverb: prepare: %w", err)
	}

	l := planLayout(sampleRate, h.effectiveSize())
	if cells := l.cells(); cells > MaxDelayCells {
		return fmt.Errorf("%w: %d cells at %.0f Hz", ErrDelayMemory, cells, sampleRate)
	}

	if err := h.allocate(l); err != nil {
		return err
	}

	h.sampleRate = sampleRate
	h.blockSize = blockSize
	h.updateCoefficients()
	h.Reset()

	debug("prepared: rate=%.0f block=%d cells=%d combs=%v", sampleRate, blockSize, l.cells(), l.combs)

	return nil
}

func (h *Hall) allocate(l layout) error {
	preDelay, err := delay.New(l.preDelay)
	if err != nil {
		return fmt.Errorf("reverb: pre-delay: %w", err)
	}

	var (
		early   [numEarly]*delay.Tap
		combs   [numCombs]*delay.Tap
		allpass [numAllpass]*delay.Tap
	)
	for i, d := range l.early {
		if early[i], err = delay.NewTap(d); err != nil {
			return fmt.Errorf("reverb: early tap %d: %w", i, err)
		}
	}
	for i, d := range l.combs {
		if combs[i], err = delay.NewTap(d); err != nil {
			return fmt.Errorf("reverb: comb %d: %w", i, err)
		}
	}
	for i, d := range l.allpass {
		if allpass[i], err = delay.NewTap(d); err != nil {
			return fmt.Errorf("reverb: allpass %d: %w", i, err)
		}
	}

	h.preDelay = preDelay
	for i := range h.early {
		h.early[i].line = early[i]
	}
	for i := range h.combs {
		h.combs[i].line = combs[i]
	}
	for i := range h.allpass {
		h.allpass[i].line = allpass[i]
	}

	return nil
}

// Reset clears every delay line, filter state, the LFO and the tail
// follower. Parameters and coefficients are kept.
func (h *Hall) Reset() {
	h.preDelay.Reset()
	for i := range h.early {
		h.early[i].line.Reset()
	}
	for i := range h.combs {
		h.combs[i].line.Reset()
	}
	for i := range h.allpass {
		h.allpass[i].line.Reset()
	}

	h.dcState = 0
	h.lpfLeft = 0
	h.lpfRight = 0
	h.lfoPhase = 0
	h.tail = 0
}

// ReleaseResources drops the delay memory. Until the next Prepare every
// delay stage passes its input through.
func (h *Hall) ReleaseResources() {
	cells := h.delayCells()

	h.preDelay = nil
	for i := range h.early {
		h.early[i].line = nil
	}
	for i := range h.combs {
		h.combs[i].line = nil
	}
	for i := range h.allpass {
		h.allpass[i].line = nil
	}

	debug("released delay memory: cells=%d", cells)
}

// SampleRate returns the rate given to Prepare.
func (h *Hall) SampleRate() float64 { return h.sampleRate }

// BlockSize returns the block size given to Prepare.
func (h *Hall) BlockSize() int { return h.blockSize }

// SetEffectID sets the bus slot used for pool access.
func (h *Hall) SetEffectID(id int) { h.effectID = id }

// EffectID returns the bus slot.
func (h *Hall) EffectID() int { return h.effectID }

// BusStats returns pool access counters.
func (h *Hall) BusStats() BusStats { return h.bus }

// RT60 returns the decay time in seconds derived from the decay parameter.
func (h *Hall) RT60() float32 { return h.rt60 }

// TailLevel returns the smoothed absolute level at the allpass output.
func (h *Hall) TailLevel() float32 { return h.tail }

// LFOPhase returns the modulation phase in radians.
func (h *Hall) LFOPhase() float32 { return h.lfoPhase }

// UpdateModulation advances the LFO by one control tick.
func (h *Hall) UpdateModulation(int) {
	h.lfoPhase += lfoStep
	if h.lfoPhase > twoPi {
		h.lfoPhase -= twoPi
	}
}

// RealtimeDisplay reports decay time and tail level.
func (h *Hall) RealtimeDisplay() string {
	tailDB := gainToDB(h.tail + tailFloorOffset)
	return fmt.Sprintf("RT60: %.1fs  Tail: %.1f dB", h.rt60, tailDB)
}

// delayCells reports the allocated delay memory, guard cells included.
func (h *Hall) delayCells() int {
	total := h.preDelay.Len()
	for i := range h.early {
		total += h.early[i].line.Len()
	}
	for i := range h.combs {
		total += h.combs[i].line.Len()
	}
	for i := range h.allpass {
		total += h.allpass[i].line.Len()
	}
	return total
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
