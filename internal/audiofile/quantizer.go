package audiofile

import (
	"math"
	"math/rand/v2"
)

// SaveOption configures SaveWAV.
type SaveOption func(*saveConfig)

type saveConfig struct {
	rng *rand.Rand
}

// WithDither adds triangular (TPDF) dither of one LSB peak before
// quantization. The noise sequence is fixed by seed.
func WithDither(seed uint64) SaveOption {
	return func(c *saveConfig) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// quantizer maps [-1, 1] floats onto signed integers of one bit depth.
type quantizer struct {
	full float64
	lo   float64
	hi   float64
	rng  *rand.Rand
}

func newQuantizer(bitDepth int, rng *rand.Rand) *quantizer {
	full := math.Exp2(float64(bitDepth - 1))
	return &quantizer{full: full, lo: -full, hi: full - 1, rng: rng}
}

func (q *quantizer) quantize(v float64) int {
	if math.IsNaN(v) {
		return 0
	}

	scaled := v * q.full
	if q.rng != nil {
		scaled += q.rng.Float64() - q.rng.Float64()
	}

	return int(math.Max(q.lo, math.Min(q.hi, math.Round(scaled))))
}
