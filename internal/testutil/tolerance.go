package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vecmath"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequirePeakBelow fails t if any |data[i]| reaches limit.
func RequirePeakBelow(t *testing.T, data []float64, limit float64) {
	t.Helper()
	if peak := vecmath.MaxAbs(data); peak >= limit {
		t.Fatalf("peak %v, want < %v", peak, limit)
	}
}
