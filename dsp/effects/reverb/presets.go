package reverb

import (
	"slices"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/module"
)

// Values above 1 are clamped on load.
var factoryPresets = []module.Preset{
	{Name: "Small Room", Description: "Tight, intimate space", Values: []float32{0.0, 0.3, 0.6, 0.7, 0.8, 0.6, 0.4}},
	{Name: "Medium Hall", Description: "Balanced concert hall", Values: []float32{0.1, 0.5, 0.8, 0.4, 0.7, 0.8, 0.5}},
	{Name: "Large Hall", Description: "Spacious cathedral", Values: []float32{0.2, 0.8, 0.9, 0.3, 0.6, 1.2, 0.6}},
	{Name: "Plate Verb", Description: "Classic plate reverb", Values: []float32{0.0, 0.4, 0.9, 0.6, 0.5, 0.7, 0.5}},
	{Name: "Gated Room", Description: "80s drum reverb", Values: []float32{0.0, 0.2, 0.7, 0.8, 0.9, 0.6, 0.3}},
	{Name: "Ambient", Description: "Ethereal, long decay", Values: []float32{0.3, 0.9, 0.7, 0.2, 0.4, 1.5, 0.7}},
	{Name: "Vocal Chamber", Description: "Optimized for vocals", Values: []float32{0.15, 0.45, 0.75, 0.55, 0.8, 0.8, 0.45}},
	{Name: "Reverse Tail", Description: "Reverse reverb effect", Values: []float32{0.25, 0.6, 0.5, 0.4, 0.3, 1.0, 0.6}},
}

// FactoryPresets returns copies of the built-in presets.
func (h *Hall) FactoryPresets() []module.Preset {
	out := make([]module.Preset, len(factoryPresets))
	for i, p := range factoryPresets {
		out[i] = module.Preset{Name: p.Name, Description: p.Description, Values: slices.Clone(p.Values)}
	}
	return out
}

// LoadPreset clamps and applies every value, then rederives coefficients
// once. Short presets are rejected without applying anything.
func (h *Hall) LoadPreset(p module.Preset) error {
	if err := module.CheckPreset(p, numParams); err != nil {
		return err
	}

	for i := range h.params {
		h.params[i] = core.ClampUnit(p.Values[i])
	}
	h.updateCoefficients()

	debug("loaded preset %q", p.Name)

	return nil
}

// CurrentPreset snapshots the current settings.
func (h *Hall) CurrentPreset() module.Preset {
	return module.Preset{
		Name:        "Current Settings",
		Description: "Current reverb parameters",
		Values:      slices.Clone(h.params[:]),
	}
}
