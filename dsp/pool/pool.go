package pool

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/GeoffreyPlitt/debuggo"

	"github.com/cwbudde/dsp256/dsp/fixed"
)

var debug = debuggo.Debug("dsp256:pool")

const (
	// DefaultSize is the requested cell count of the hardware pool.
	DefaultSize = 131072

	// CorruptionOdds is the 1-in-N chance that a write flips the LSB of the
	// following cell.
	CorruptionOdds = 10000

	// BusSlots is the number of engines the bus arbiter rotates between.
	BusSlots = 4

	powerOnNoise = 100
	maxSize      = 1 << 30
)

// ErrInvalidSize is returned for a non-positive or oversized request.
var ErrInvalidSize = errors.New("pool: size must be in (0, 2^30]")

// Pool is the shared delay memory.
type Pool struct {
	buffer     []fixed.Sample
	mask       int
	writePos   int
	sampleRate float64

	rng         *rand.Rand
	corruptions uint64
}

// Option configures a Pool.
type Option func(*config)

type config struct {
	seed       uint64
	seeded     bool
	sampleRate float64
}

// WithSeed makes power-on noise and write corruption reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithSampleRate records the sample rate the pool runs at.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		if sampleRate > 0 {
			c.sampleRate = sampleRate
		}
	}
}

// New allocates a pool of at least requestedSize cells, rounded up to the
// next power of two, and fills it with power-on noise in [-100, 100).
func New(requestedSize int, opts ...Option) (*Pool, error) {
	if requestedSize <= 0 || requestedSize > maxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, requestedSize)
	}

	cfg := config{sampleRate: 44100}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var src rand.Source
	if cfg.seeded {
		src = rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	size := nextPowerOfTwo(requestedSize)
	p := &Pool{
		buffer:     make([]fixed.Sample, size),
		mask:       size - 1,
		sampleRate: cfg.sampleRate,
		rng:        rand.New(src),
	}

	for i := range p.buffer {
		p.buffer[i] = fixed.Sample(p.rng.IntN(2*powerOnNoise) - powerOnNoise)
	}

	debug("allocated pool: requested=%d size=%d seeded=%v", requestedSize, size, cfg.seeded)

	return p, nil
}

// Prepare records the sample rate of the engines using the pool.
func (p *Pool) Prepare(sampleRate float64) {
	p.sampleRate = sampleRate
}

// SampleRate returns the rate given to Prepare or WithSampleRate.
func (p *Pool) SampleRate() float64 { return p.sampleRate }

// Size returns the number of cells.
func (p *Pool) Size() int { return len(p.buffer) }

// WritePos returns the current write cursor, which also drives the bus arbiter.
func (p *Pool) WritePos() int { return p.writePos }

// Corruptions returns how many LSB flips writes have injected so far.
func (p *Pool) Corruptions() uint64 { return p.corruptions }

// Write stores sample at the cursor and advances it. With probability
// 1/CorruptionOdds the least-significant bit of the next cell is flipped.
// effectID identifies the writer on the bus; the emulated bus does not
// arbitrate writes.
func (p *Pool) Write(sample fixed.Sample, effectID int) {
	p.buffer[p.writePos] = sample
	p.writePos = (p.writePos + 1) & p.mask

	if p.rng.IntN(CorruptionOdds) < 1 {
		p.buffer[p.writePos] ^= 0x01
		p.corruptions++
	}
}

// Arbitrate resolves the bus slot for a read by effectID. When the arbiter
// (the write cursor) points at another engine's slot the read is contended
// and the offset shrinks by one, never below one.
func (p *Pool) Arbitrate(offset, effectID int) (effective int, contended bool) {
	if p.writePos%BusSlots != effectID%BusSlots {
		return max(1, offset-1), true
	}
	return offset, false
}

// ReadContended returns the sample offset cells behind the write cursor as
// seen through the shared bus, and whether the read was contended.
func (p *Pool) ReadContended(offset, effectID int) (fixed.Sample, bool) {
	effective, contended := p.Arbitrate(offset, effectID)
	readPos := (int64(p.writePos) - int64(effective)) & int64(p.mask)
	return p.buffer[readPos], contended
}

// Clear zeroes the memory and rewinds the cursor.
func (p *Pool) Clear() {
	clear(p.buffer)
	p.writePos = 0
	debug("cleared pool: size=%d", len(p.buffer))
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
