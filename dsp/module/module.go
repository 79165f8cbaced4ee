package module

import (
	"github.com/cwbudde/dsp256/dsp/fixed"
	"github.com/cwbudde/dsp256/dsp/pool"
)

// ModulationInterval is the number of samples between UpdateModulation
// calls made by the host.
const ModulationInterval = 64

// Module is one effect engine. Parameter values are normalized to [0, 1];
// out-of-range and NaN input is clamped, never rejected.
//
// Process, SetParameter and UpdateModulation run on the audio thread and
// must not allocate or block. Callers serialize all methods.
type Module interface {
	Name() string
	Description() string
	Version() int

	Parameters() []Parameter
	ParameterCount() int
	SetParameter(index int, value float32)
	Parameter(index int) float32
	ParameterDisplay(index int) string

	FactoryPresets() []Preset
	// LoadPreset applies every value at once. Presets with fewer values
	// than ParameterCount are rejected with ErrPresetSize.
	LoadPreset(p Preset) error
	CurrentPreset() Preset

	// Prepare sizes internal buffers for the stream and resets state.
	Prepare(sampleRate float64, blockSize int) error
	Reset()
	ReleaseResources()

	// Process transforms one stereo sample pair in place. bus may be nil.
	Process(left, right *fixed.Sample, bus *pool.Pool, eng *fixed.Engine)
}

// Modulator is implemented by modules with control-rate state.
type Modulator interface {
	// UpdateModulation advances modulation by one control tick. tick counts
	// samples processed since the last Prepare.
	UpdateModulation(tick int)
}

// RealtimeDisplay is implemented by modules that report a status line.
type RealtimeDisplay interface {
	RealtimeDisplay() string
}

// BusClient is implemented by modules that access the shared pool. The
// host assigns every module on one pool a distinct bus slot.
type BusClient interface {
	SetEffectID(id int)
	EffectID() int
}
