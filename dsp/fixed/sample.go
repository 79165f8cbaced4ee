package fixed

import "math"

// Sample is a Q12 fixed-point value limited to 20 bits.
type Sample int32

const (
	// FracBits is the number of fractional bits.
	FracBits = 12
	// One is 1.0 in Q12.
	One Sample = 1 << FracBits
	// Max is the largest representable value (524287).
	Max Sample = 0x7FFFF
	// Min is the smallest representable value (-524288).
	Min Sample = -0x80000
)

const scale = float32(One)

// Saturate clamps a wide intermediate into the 20-bit range and reports
// whether clamping was necessary.
func Saturate(v int64) (Sample, bool) {
	switch {
	case v > int64(Max):
		return Max, true
	case v < int64(Min):
		return Min, true
	default:
		return Sample(v), false
	}
}

// FromFloat quantizes f to Q12, truncating toward zero and saturating.
// NaN quantizes to zero.
func FromFloat(f float32) Sample {
	scaled := f * scale
	switch {
	case math.IsNaN(float64(scaled)):
		return 0
	case scaled >= float32(Max):
		return Max
	case scaled <= float32(Min):
		return Min
	}
	return Sample(int32(scaled))
}

// Float converts s back to floating point.
func (s Sample) Float() float32 {
	return float32(s) / scale
}

// Step is the size of one quantization step in floating point.
func Step() float32 { return 1 / scale }
