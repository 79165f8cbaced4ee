package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for non-positive buffer sizes.
var ErrInvalidSize = errors.New("delay: size must be > 0")

// Line is a circular float delay line. Each Process call writes at the
// cursor, reads a fixed distance behind it and then advances.
type Line struct {
	buffer   []float32
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Line{buffer: make([]float32, size)}, nil
}

// Len returns internal buffer size. A nil line has length zero.
func (d *Line) Len() int {
	if d == nil {
		return 0
	}
	return len(d.buffer)
}

// Fits reports whether offset can be read from the line.
func (d *Line) Fits(offset int) bool {
	return offset >= 0 && offset < d.Len()
}

// Process stores sample and returns the value offset samples older.
// offset must satisfy Fits.
func (d *Line) Process(sample float32, offset int) float32 {
	size := len(d.buffer)
	d.buffer[d.writePos] = sample
	out := d.buffer[(d.writePos-offset+size)%size]
	d.writePos++
	if d.writePos >= size {
		d.writePos = 0
	}
	return out
}

// Reset clears line state.
func (d *Line) Reset() {
	if d == nil {
		return
	}
	clear(d.buffer)
	d.writePos = 0
}
