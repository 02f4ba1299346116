package timing

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrRegistryFrozen is returned when registering after configuration.
	ErrRegistryFrozen = errors.New("model registry is frozen")

	// ErrDuplicateModel is returned when a model name is registered twice.
	ErrDuplicateModel = errors.New("duplicated model")
)

// A ModelProvider gives access to the models registered with an engine.
type ModelProvider interface {
	// Model returns the model registered under the name.
	Model(name string) (any, bool)

	// ModelNames returns the names of all models in registration order.
	ModelNames() []string
}

// ModelAs looks up a model by name and checks that it has type T.
func ModelAs[T any](p ModelProvider, name string) (T, bool) {
	var zero T

	m, found := p.Model(name)
	if !found {
		return zero, false
	}

	typed, ok := m.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// Registry is a ModelProvider that models can be registered with until it is
// frozen.
type Registry struct {
	lock   sync.RWMutex
	models map[string]any
	names  []string
	frozen bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]any),
	}
}

// Register adds a model under a name.
func (r *Registry) Register(name string, model any) error {
	if model == nil {
		return fmt.Errorf("model %q is nil", name)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.frozen {
		return fmt.Errorf("registering model %q: %w", name, ErrRegistryFrozen)
	}

	if _, found := r.models[name]; found {
		return fmt.Errorf("registering model %q: %w", name, ErrDuplicateModel)
	}

	r.models[name] = model
	r.names = append(r.names, name)

	return nil
}

// Freeze prevents any further registration.
func (r *Registry) Freeze() {
	r.lock.Lock()
	r.frozen = true
	r.lock.Unlock()
}

// Model returns the model registered under the name.
func (r *Registry) Model(name string) (any, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	m, found := r.models[name]

	return m, found
}

// ModelNames returns the names of all models in registration order.
func (r *Registry) ModelNames() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, len(r.names))
	copy(names, r.names)

	return names
}
