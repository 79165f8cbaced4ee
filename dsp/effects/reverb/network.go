package reverb

import (
	"github.com/cwbudde/dsp256/dsp/delay"
	"github.com/cwbudde/dsp256/dsp/fixed"
)

const (
	numEarly   = 8
	numCombs   = 4
	numAllpass = 2

	minDelaySamples  = 10
	referenceRate    = 44100
	maxPreDelaySecs  = 0.2
	preDelayRangeMS  = 100
	fallbackRoomSize = 0.5
	minRoomSize      = 0.1
)

// Tunings in samples at 44.1 kHz and a room size of 1.
var (
	earlyTunings   = [numEarly]int{142, 107, 379, 277, 672, 908, 445, 500}
	combTunings    = [numCombs]int{1687, 1923, 2287, 2763}
	allpassTunings = [numAllpass]int{389, 127}
)

// earlyTap is one early reflection: out = in + delayed*gain.
type earlyTap struct {
	line *delay.Tap
	gain fixed.Sample
}

func (e *earlyTap) process(in float32) float32 {
	delayed := e.line.Delayed().Float()
	out := in + float32(delayed*e.gain.Float())
	e.line.Push(fixed.FromFloat(out))
	return out
}

// comb is a feedback comb: out = in + delayed*feedback.
type comb struct {
	line     *delay.Tap
	feedback fixed.Sample
}

func (c *comb) process(in float32) float32 {
	delayed := c.line.Delayed().Float()
	out := in + float32(delayed*c.feedback.Float())
	c.line.Push(fixed.FromFloat(out))
	return out
}

// allpass is a Schroeder diffuser:
//
//	out   = delayed - g*in
//	write = in + g*delayed
type allpass struct {
	line  *delay.Tap
	coeff fixed.Sample
}

func (a *allpass) process(in float32) float32 {
	delayed := a.line.Delayed().Float()
	g := a.coeff.Float()
	out := delayed - float32(g*in)
	a.line.Push(fixed.FromFloat(in + float32(g*delayed)))
	return out
}

// layout holds the buffer lengths derived from sample rate and room size.
type layout struct {
	preDelay int
	early    [numEarly]int
	combs    [numCombs]int
	allpass  [numAllpass]int
}

func planLayout(sampleRate float64, roomSize float32) layout {
	scale := float32(sampleRate) / referenceRate

	length := func(base int) int {
		return max(minDelaySamples, int(float32(base)*scale*roomSize))
	}

	var l layout
	l.preDelay = max(minDelaySamples, int(sampleRate*maxPreDelaySecs))
	for i, base := range earlyTunings {
		l.early[i] = length(base)
	}
	for i, base := range combTunings {
		l.combs[i] = length(base)
	}
	for i, base := range allpassTunings {
		l.allpass[i] = length(base)
	}
	return l
}

// cells counts the samples of delay memory the layout needs, guard cells
// included.
func (l layout) cells() int {
	total := l.preDelay
	for _, d := range l.early {
		total += d + 1
	}
	for _, d := range l.combs {
		total += d + 1
	}
	for _, d := range l.allpass {
		total += d + 1
	}
	return total
}
