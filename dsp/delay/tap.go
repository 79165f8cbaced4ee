package delay

import (
	"fmt"

	"github.com/cwbudde/dsp256/dsp/fixed"
)

// Tap is a fixed-point delay of a constant length. The buffer holds one
// guard cell beyond the delay so the oldest cell is always the delayed
// sample.
//
// A nil or zero Tap is not Ready; callers skip it.
type Tap struct {
	buffer   []fixed.Sample
	delay    int
	writePos int
}

// NewTap returns a tap delaying by delay samples.
func NewTap(delay int) (*Tap, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("%w: delay %d", ErrInvalidSize, delay)
	}
	return &Tap{
		buffer: make([]fixed.Sample, delay+1),
		delay:  delay,
	}, nil
}

// Ready reports whether the tap has storage.
func (t *Tap) Ready() bool {
	return t != nil && len(t.buffer) > 0
}

// Delay returns the delay in samples.
func (t *Tap) Delay() int {
	if t == nil {
		return 0
	}
	return t.delay
}

// Len returns the buffer length (delay + 1).
func (t *Tap) Len() int {
	if t == nil {
		return 0
	}
	return len(t.buffer)
}

// Delayed returns the sample written Delay() pushes ago.
func (t *Tap) Delayed() fixed.Sample {
	size := len(t.buffer)
	return t.buffer[(t.writePos-t.delay+size)%size]
}

// Push stores s at the cursor and advances.
func (t *Tap) Push(s fixed.Sample) {
	t.buffer[t.writePos] = s
	t.writePos++
	if t.writePos >= len(t.buffer) {
		t.writePos = 0
	}
}

// Reset zeroes the buffer and rewinds the cursor.
func (t *Tap) Reset() {
	if t == nil {
		return
	}
	clear(t.buffer)
	t.writePos = 0
}
