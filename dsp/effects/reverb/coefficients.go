package reverb

import (
	"math"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/fixed"
)

const (
	maxCombFeedback = 0.95
	dampingSpan     = 0.99
	diffusionSpan   = 0.7
	minAllpassCoeff = 0.1
	maxAllpassCoeff = 0.9
	averageDelay    = 2165
)

// rt60 maps normalized decay to seconds on a 0.1-10 s log scale.
func rt60(decay float32) float32 {
	return 0.1 * float32(math.Pow(10, float64(decay*2)))
}

// combFeedback is the comb gain that reaches -60 dB after rt60 seconds for
// the average comb length, capped for stability.
func combFeedback(rt60 float32, sampleRate float64, roomSize float32) float32 {
	avgDelay := float32(float64(averageDelay*roomSize) * (sampleRate / referenceRate))
	avgDelay = max(avgDelay, minDelaySamples)

	fb := float32(math.Pow(10, float64(-3*rt60/avgDelay)))
	return core.Clamp(fb, 0, maxCombFeedback)
}

func dampingAlpha(damping float32) float32 {
	return 1 - float32(damping*dampingSpan)
}

func earlyGain(level float32, tap int) float32 {
	return core.Clamp(float32(level*(0.9-float32(float32(tap)*0.1))), 0, 1)
}

func allpassCoeff(diffusion float32) float32 {
	return core.Clamp(float32(diffusion*diffusionSpan), minAllpassCoeff, maxAllpassCoeff)
}

func preDelayOffset(preDelay float32, sampleRate float64) int {
	ms := preDelay * preDelayRangeMS
	return max(1, int(float64(ms)*sampleRate/1000))
}

// updateCoefficients derives every gain from the parameters and the sample
// rate and quantizes it once.
func (h *Hall) updateCoefficients() {
	size := h.effectiveSize()

	h.preDelayOffset = preDelayOffset(h.params[ParamPreDelay], h.sampleRate)
	h.rt60 = rt60(h.params[ParamDecay])

	fb := fixed.FromFloat(combFeedback(h.rt60, h.sampleRate, size))
	for i := range h.combs {
		h.combs[i].feedback = fb
	}

	h.alpha = fixed.FromFloat(dampingAlpha(h.params[ParamDamping]))

	for i := range h.early {
		h.early[i].gain = fixed.FromFloat(earlyGain(h.params[ParamEarly], i))
	}

	ap := fixed.FromFloat(allpassCoeff(h.params[ParamDiffusion]))
	for i := range h.allpass {
		h.allpass[i].coeff = ap
	}
}

// effectiveSize is the room size used for derivation. Sizes below 0.1
// fall back to 0.5; the stored parameter keeps its value.
func (h *Hall) effectiveSize() float32 {
	if s := h.params[ParamSize]; s >= minRoomSize {
		return s
	}
	return fallbackRoomSize
}
