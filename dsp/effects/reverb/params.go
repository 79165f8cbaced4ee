package reverb

import (
	"fmt"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/module"
)

// Parameter indices.
const (
	ParamPreDelay = iota
	ParamDecay
	ParamDiffusion
	ParamDamping
	ParamEarly
	ParamSize
	ParamMix

	numParams
)

var parameters = [numParams]module.Parameter{
	{ID: "predelay", Name: "Pre-Delay", Label: "PREDLY", Unit: "ms", Min: 0, Max: 100, Default: 0, Step: 0.1},
	{ID: "decay", Name: "Decay Time", Label: "DECAY", Unit: "s", Min: 0.1, Max: 10, Default: 2.0, Step: 0.01, Logarithmic: true},
	{ID: "diffusion", Name: "Diffusion", Label: "DIFF", Unit: "%", Min: 0, Max: 100, Default: 80, Step: 0.1},
	{ID: "damping", Name: "HF Damping", Label: "DAMP", Unit: "%", Min: 0, Max: 100, Default: 50, Step: 0.1},
	{ID: "early", Name: "Early Reflections", Label: "EARLY", Unit: "%", Min: 0, Max: 100, Default: 70, Step: 0.1},
	{ID: "size", Name: "Room Size", Label: "SIZE", Unit: "x", Min: 0.5, Max: 2.0, Default: 1.0, Step: 0.01},
	{ID: "mix", Name: "Dry/Wet Mix", Label: "MIX", Unit: "%", Min: 0, Max: 100, Default: 50, Step: 0.1},
}

// defaultParams are the normalized power-on settings. Decay 0.7 is an RT60
// of about 2.5 s.
func defaultParams() [numParams]float32 {
	return [numParams]float32{
		ParamPreDelay:  0,
		ParamDecay:     0.7,
		ParamDiffusion: 0.8,
		ParamDamping:   0.5,
		ParamEarly:     0.7,
		ParamSize:      1.0,
		ParamMix:       0.5,
	}
}

// Parameters returns the parameter metadata in index order.
func (h *Hall) Parameters() []module.Parameter {
	out := make([]module.Parameter, numParams)
	copy(out, parameters[:])
	return out
}

// ParameterCount returns the number of parameters.
func (h *Hall) ParameterCount() int { return numParams }

// SetParameter clamps value to [0, 1] and rederives coefficients. Unknown
// indices are ignored.
func (h *Hall) SetParameter(index int, value float32) {
	if index < 0 || index >= numParams {
		return
	}
	h.params[index] = core.ClampUnit(value)
	h.updateCoefficients()
}

// Parameter returns a normalized value, or 0 for unknown indices.
func (h *Hall) Parameter(index int) float32 {
	if index < 0 || index >= numParams {
		return 0
	}
	return h.params[index]
}

// ParameterDisplay formats a parameter in its display unit.
func (h *Hall) ParameterDisplay(index int) string {
	if index < 0 || index >= numParams {
		return ""
	}

	v := h.params[index]
	switch index {
	case ParamPreDelay:
		return fmt.Sprintf("%.0f ms", v*preDelayRangeMS)
	case ParamDecay:
		return fmt.Sprintf("%.1f s", rt60(v))
	case ParamSize:
		return fmt.Sprintf("%.2f", 0.5+float32(v*1.5))
	default:
		return fmt.Sprintf("%.0f%%", v*100)
	}
}
