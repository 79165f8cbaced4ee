package reverb

import (
	"github.com/cwbudde/dsp256/dsp/fixed"
	"github.com/cwbudde/dsp256/dsp/pool"
)

// Process runs one stereo sample pair through the network in place.
//
// The input is summed to mono and DC-blocked before the pre-delay. The
// early stage and the comb bank each average their active lines; a stage
// without storage passes its input on. bus may be nil; when set, the
// conditioned input is written to it and read back at the pre-delay
// offset. Bus traffic is counted in BusStats and does not reach the
// output.
func (h *Hall) Process(left, right *fixed.Sample, bus *pool.Pool, eng *fixed.Engine) {
	inL := left.Float()
	inR := right.Float()

	conditioned := eng.DCBlock(fixed.FromFloat((inL+inR)*0.5), &h.dcState)
	filtered := conditioned.Float()

	if bus != nil {
		h.busAccess(bus, conditioned)
	}

	pre := filtered
	if h.preDelay.Fits(h.preDelayOffset) {
		pre = h.preDelay.Process(filtered, h.preDelayOffset)
	}

	earlyOut := pre
	var sum float32
	active := 0
	for i := range h.early {
		if !h.early[i].line.Ready() {
			continue
		}
		sum += h.early[i].process(pre)
		active++
	}
	if active > 0 {
		earlyOut = sum / float32(active)
	}

	combOut := earlyOut
	sum, active = 0, 0
	for i := range h.combs {
		if !h.combs[i].line.Ready() {
			continue
		}
		sum += h.combs[i].process(earlyOut)
		active++
	}
	if active > 0 {
		combOut = sum / float32(active)
	}

	apOut := combOut
	for i := range h.allpass {
		if !h.allpass[i].line.Ready() {
			continue
		}
		apOut = h.allpass[i].process(apOut)
	}

	alpha := h.alpha.Float()
	h.lpfLeft = float32(h.lpfLeft*alpha) + float32(apOut*(1-alpha))
	h.lpfRight = float32(h.lpfRight*alpha) + float32(apOut*(1-alpha))

	// The right wet signal is the left damping path scaled down.
	wetL := h.lpfLeft
	wetR := float32(h.lpfRight * rightWetScale)

	mix := h.params[ParamMix]
	*left = fixed.FromFloat(float32(inL*(1-mix)) + float32(wetL*mix))
	*right = fixed.FromFloat(float32(inR*(1-mix)) + float32(wetR*mix))

	h.tail = float32(h.tail*tailDecay) + float32(abs32(apOut)*tailAttack)
}

func (h *Hall) busAccess(bus *pool.Pool, sample fixed.Sample) {
	bus.Write(sample, h.effectID)
	h.bus.Writes++

	last, contended := bus.ReadContended(h.preDelayOffset, h.effectID)
	h.bus.Reads++
	if contended {
		h.bus.Contended++
	}
	h.bus.Last = last
}
