package testutil

import "testing"

func TestQuantizeRoundTrip(t *testing.T) {
	in := []float64{0, 0.5, -0.25, 1}
	q := Quantize(in)
	RequireSliceNearlyEqual(t, Dequantize(q), in, 1e-12)
	RequireSamplesEqual(t, q, Quantize(in))
}
