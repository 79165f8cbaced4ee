package module

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPresetSize is returned when a preset carries fewer values than the
// module has parameters.
var ErrPresetSize = errors.New("module: preset has too few values")

// ErrPresetNotFound is returned by FindPreset for unknown names.
var ErrPresetNotFound = errors.New("module: preset not found")

// Preset is a named snapshot of normalized parameter values, in parameter
// order.
type Preset struct {
	Name        string
	Description string
	Values      []float32
}

// CheckPreset validates p against a module with count parameters.
func CheckPreset(p Preset, count int) error {
	if len(p.Values) < count {
		return fmt.Errorf("%w: %q has %d, want %d", ErrPresetSize, p.Name, len(p.Values), count)
	}
	return nil
}

// FindPreset returns the index of the factory preset called name. The
// comparison ignores case and surrounding space.
func FindPreset(m Module, name string) (int, error) {
	name = strings.TrimSpace(name)
	for i, p := range m.FactoryPresets() {
		if strings.EqualFold(p.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// FindParameter returns the index of the parameter whose ID or Name
// matches key, ignoring case.
func FindParameter(m Module, key string) (int, bool) {
	key = strings.TrimSpace(key)
	for i, p := range m.Parameters() {
		if strings.EqualFold(p.ID, key) || strings.EqualFold(p.Name, key) {
			return i, true
		}
	}
	return -1, false
}
