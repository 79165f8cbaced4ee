package reverb_test

import (
	"fmt"

	"github.com/cwbudde/dsp256/dsp/effects/reverb"
	"github.com/cwbudde/dsp256/dsp/fixed"
)

func ExampleHall() {
	h, err := reverb.New()
	if err != nil {
		panic(err)
	}
	if err := h.Prepare(48000, 256); err != nil {
		panic(err)
	}

	presets := h.FactoryPresets()
	if err := h.LoadPreset(presets[1]); err != nil {
		panic(err)
	}

	eng := fixed.NewEngine()
	eng.Prepare(48000)

	left, right := fixed.FromFloat(0.5), fixed.FromFloat(0.5)
	h.Process(&left, &right, nil, eng)

	for i := range h.ParameterCount() {
		fmt.Printf("%s: %s\n", h.Parameters()[i].Name, h.ParameterDisplay(i))
	}
	fmt.Println(left == fixed.FromFloat(0.25))

	// Output:
	// Pre-Delay: 10 ms
	// Decay Time: 1.0 s
	// Diffusion: 80%
	// HF Damping: 40%
	// Early Reflections: 70%
	// Room Size: 1.70
	// Dry/Wet Mix: 50%
	// true
}
