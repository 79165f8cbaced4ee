package core

import (
	"cmp"
	"math"
)

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [lo, hi].
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// ClampUnit limits a normalized control value to [0, 1]. NaN maps to 0.
func ClampUnit(value float32) float32 {
	if math.IsNaN(float64(value)) {
		return 0
	}

	return Clamp(value, 0, 1)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// GainToDB converts a linear gain to dB with a floor, the way hardware level
// meters report silence. Values at or below zero return floorDB.
func GainToDB(gain, floorDB float64) float64 {
	if gain <= 0 {
		return floorDB
	}

	return math.Max(floorDB, 20*math.Log10(gain))
}
