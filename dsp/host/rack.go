package host

import (
	"sync"

	"github.com/GeoffreyPlitt/debuggo"

	"github.com/cwbudde/dsp256/dsp/module"
	"github.com/cwbudde/dsp256/dsp/pool"
)

var debug = debuggo.Debug("dsp256:host")

// Rack is the shared hardware: one delay pool and one processing lock.
type Rack struct {
	mu     sync.Mutex
	pool   *pool.Pool
	nextID int
}

// NewRack returns a rack around p. A nil pool runs modules without bus
// access.
func NewRack(p *pool.Pool) *Rack {
	return &Rack{pool: p}
}

// NewDefaultRack allocates a pool of pool.DefaultSize cells.
func NewDefaultRack(opts ...pool.Option) (*Rack, error) {
	p, err := pool.New(pool.DefaultSize, opts...)
	if err != nil {
		return nil, err
	}
	return NewRack(p), nil
}

// Pool returns the shared pool, or nil.
func (r *Rack) Pool() *pool.Pool { return r.pool }

// NewProcessor attaches m to the rack and assigns it the next bus slot.
func (r *Rack) NewProcessor(m module.Module) *Processor {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.mu.Unlock()

	if bc, ok := m.(module.BusClient); ok {
		bc.SetEffectID(id)
	}

	p := newProcessor(r, m)
	debug("attached %s as effect %d", m.Name(), id)

	return p
}

// Reset clears the shared pool.
func (r *Rack) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pool != nil {
		r.pool.Clear()
	}
}
