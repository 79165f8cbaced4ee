package reverb

import (
	"testing"

	"github.com/cwbudde/dsp256/dsp/fixed"
	"github.com/cwbudde/dsp256/dsp/pool"
	"github.com/cwbudde/dsp256/internal/testutil"
)

func newHall(t *testing.T) *Hall {
	t.Helper()

	h, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

// render runs a mono float signal through h on both channels.
func render(h *Hall, in []float64, bus *pool.Pool) (left, right []fixed.Sample) {
	eng := fixed.NewEngine()
	eng.Prepare(h.SampleRate())

	q := testutil.Quantize(in)
	left = make([]fixed.Sample, len(q))
	right = make([]fixed.Sample, len(q))
	for i, s := range q {
		l, r := s, s
		h.Process(&l, &r, bus, eng)
		left[i], right[i] = l, r
	}
	return left, right
}
