package testutil

import (
	"testing"

	"github.com/cwbudde/dsp256/dsp/fixed"
)

// Quantize converts a float signal to Q12 samples.
func Quantize(data []float64) []fixed.Sample {
	out := make([]fixed.Sample, len(data))
	for i, v := range data {
		out[i] = fixed.FromFloat(float32(v))
	}
	return out
}

// Dequantize converts Q12 samples back to floating point.
func Dequantize(data []fixed.Sample) []float64 {
	out := make([]float64, len(data))
	for i, s := range data {
		out[i] = float64(s.Float())
	}
	return out
}

// RequireSamplesEqual fails t unless got and want match bit for bit.
func RequireSamplesEqual(t *testing.T, got, want []fixed.Sample) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
