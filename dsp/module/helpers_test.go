package module

import (
	"github.com/cwbudde/dsp256/dsp/fixed"
	"github.com/cwbudde/dsp256/dsp/pool"
)

// stubModule is a two-parameter gain used to exercise the helpers.
type stubModule struct {
	values [2]float32
}

func (s *stubModule) Name() string        { return "Stub" }
func (s *stubModule) Description() string { return "test gain" }
func (s *stubModule) Version() int        { return 1 }

func (s *stubModule) Parameters() []Parameter {
	return []Parameter{
		{ID: "gain", Name: "Gain", Label: "GAIN", Unit: "%", Max: 100, Default: 100, Step: 1},
		{ID: "trim", Name: "Trim", Label: "TRIM", Unit: "%", Max: 100, Default: 0, Step: 1},
	}
}

func (s *stubModule) ParameterCount() int { return len(s.values) }

func (s *stubModule) SetParameter(index int, value float32) {
	if index >= 0 && index < len(s.values) {
		s.values[index] = min(max(value, 0), 1)
	}
}

func (s *stubModule) Parameter(index int) float32 {
	if index >= 0 && index < len(s.values) {
		return s.values[index]
	}
	return 0
}

func (s *stubModule) ParameterDisplay(int) string { return "" }

func (s *stubModule) FactoryPresets() []Preset {
	return []Preset{
		{Name: "Unity", Values: []float32{1, 0}},
		{Name: "Quiet", Values: []float32{0.1, 0}},
	}
}

func (s *stubModule) LoadPreset(p Preset) error {
	if err := CheckPreset(p, s.ParameterCount()); err != nil {
		return err
	}
	for i := range s.values {
		s.SetParameter(i, p.Values[i])
	}
	return nil
}

func (s *stubModule) CurrentPreset() Preset {
	return Preset{Name: "Current", Values: s.values[:]}
}

func (s *stubModule) Prepare(float64, int) error { return nil }
func (s *stubModule) Reset()                     {}
func (s *stubModule) ReleaseResources()          {}

func (s *stubModule) Process(left, right *fixed.Sample, _ *pool.Pool, _ *fixed.Engine) {
	g := fixed.FromFloat(s.values[0])
	*left = fixed.MulSat(*left, g)
	*right = fixed.MulSat(*right, g)
}

func stubFactory() (Module, error) {
	return &stubModule{}, nil
}
