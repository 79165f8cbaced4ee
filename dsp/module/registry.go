package module

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Factory builds one Module instance.
type Factory func() (Module, error)

// Registry maps effect type names to their factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

var (
	errDuplicateEffect = errors.New("module: duplicate effect type")

	// ErrUnknownEffect is returned by New for unregistered types.
	ErrUnknownEffect = errors.New("module: unknown effect type")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("module: empty effect type")
	}

	if factory == nil {
		return errors.New("module: nil factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("module registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.factories[effectType]
}

// New builds a module of the given type.
func (r *Registry) New(effectType string) (Module, error) {
	factory := r.Lookup(effectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, effectType)
	}

	m, err := factory()
	if err != nil {
		return nil, fmt.Errorf("module: build %s: %w", effectType, err)
	}

	return m, nil
}

// Types returns the registered effect types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	slices.Sort(types)

	return types
}

// Default is the process-wide registry engine packages add themselves to.
var Default = NewRegistry()
