package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/dsp256/dsp/effects/reverb"
	"github.com/cwbudde/dsp256/dsp/host"
	"github.com/cwbudde/dsp256/dsp/module"
)

const (
	defaultPreset = "Medium Hall"
	outputDepth   = 24
)

// assignment is one -p name=value override, value normalized to [0, 1].
type assignment struct {
	name  string
	value float64
}

// assignments collects repeated -p flags.
type assignments []assignment

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, as := range *a {
		parts[i] = fmt.Sprintf("%s=%g", as.name, as.value)
	}
	return strings.Join(parts, ",")
}

func (a *assignments) Set(s string) error {
	as, err := parseAssignment(s)
	if err != nil {
		return err
	}
	*a = append(*a, as)
	return nil
}

func parseAssignment(s string) (assignment, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return assignment{}, fmt.Errorf("parameter %q: want name=value", s)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return assignment{}, fmt.Errorf("parameter %q: %w", s, err)
	}
	if v < 0 || v > 1 {
		return assignment{}, fmt.Errorf("parameter %q: value must be in [0, 1]", s)
	}

	return assignment{name: name, value: v}, nil
}

// effectFlags are the flags shared by every command that runs the reverb.
type effectFlags struct {
	preset string
	params assignments
}

func (f *effectFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.preset, "preset", defaultPreset, "factory preset name")
	fs.Var(&f.params, "p", "parameter override name=value, value in [0, 1] (repeatable)")
}

func newHall() (*reverb.Hall, error) {
	m, err := module.Default.New(module.TypeHallReverb.Key())
	if err != nil {
		return nil, err
	}

	h, ok := m.(*reverb.Hall)
	if !ok {
		return nil, fmt.Errorf("registry built %T for %s", m, module.TypeHallReverb)
	}
	return h, nil
}

// attach builds a hall on rack and applies the preset, then the overrides
// in order.
func (f *effectFlags) attach(rack *host.Rack) (*host.Processor, *reverb.Hall, error) {
	h, err := newHall()
	if err != nil {
		return nil, nil, err
	}

	p := rack.NewProcessor(h)

	idx, err := module.FindPreset(h, f.preset)
	if err != nil {
		return nil, nil, err
	}
	if err := p.LoadPreset(idx); err != nil {
		return nil, nil, err
	}

	if err := applyAssignments(p, f.params); err != nil {
		return nil, nil, err
	}

	return p, h, nil
}

func applyAssignments(p *host.Processor, as []assignment) error {
	for _, a := range as {
		idx, ok := module.FindParameter(p.Module(), a.name)
		if !ok {
			return fmt.Errorf("unknown parameter %q", a.name)
		}
		p.SetParameter(idx, a.value)
	}
	return nil
}
