package host

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	stateMagic   = "DSP256"
	stateVersion = uint32(1)
	// maxStateParams bounds the count field of untrusted state.
	maxStateParams = 1024
)

// ErrInvalidState is returned by LoadState for malformed data.
var ErrInvalidState = errors.New("host: invalid state")

// SaveState writes the host parameter values:
//
//	"DSP256" | version uint32 | count uint32 | count x float32
//
// All integers are little endian.
func (p *Processor) SaveState(w io.Writer) error {
	if _, err := io.WriteString(w, stateMagic); err != nil {
		return fmt.Errorf("host: save state: %w", err)
	}

	values := make([]float32, len(p.params))
	for i := range p.params {
		values[i] = float32(p.params[i].Load())
	}

	for _, v := range []any{stateVersion, uint32(len(values)), values} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("host: save state: %w", err)
		}
	}

	return nil
}

// LoadState restores values written by SaveState and applies them to the
// module. Values beyond the module's parameter count are ignored; missing
// ones keep their current value.
func (p *Processor) LoadState(r io.Reader) error {
	header := make([]byte, len(stateMagic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("%w: header: %w", ErrInvalidState, err)
	}
	if string(header) != stateMagic {
		return fmt.Errorf("%w: bad magic %q", ErrInvalidState, header)
	}

	var version, count uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("%w: version: %w", ErrInvalidState, err)
	}
	if version > stateVersion {
		return fmt.Errorf("%w: version %d is newer than %d", ErrInvalidState, version, stateVersion)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("%w: count: %w", ErrInvalidState, err)
	}
	if count > maxStateParams {
		return fmt.Errorf("%w: %d parameters", ErrInvalidState, count)
	}

	values := make([]float32, count)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return fmt.Errorf("%w: values: %w", ErrInvalidState, err)
	}

	for i, v := range values {
		if i >= len(p.params) {
			break
		}
		p.SetParameter(i, float64(v))
	}

	p.rack.mu.Lock()
	defer p.rack.mu.Unlock()

	p.pushParameters()

	debug("restored %d values into %s", len(values), p.mod.Name())

	return nil
}
