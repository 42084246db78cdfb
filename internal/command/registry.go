package command

import (
	"sort"

	"workbench/internal/errors"
)

// Registry holds the known command descriptors. It is constructed once at
// startup and passed by reference into the components that need it; there is
// no package-level registry.
type Registry struct {
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
	}
}

// Register adds a descriptor to the registry. Registering two descriptors
// with the same name is an error.
func (r *Registry) Register(d Descriptor) error {
	name := d.Metadata().Name
	if name == "" {
		return errors.DescriptorInvalid(name, "descriptor name cannot be empty")
	}
	if _, exists := r.descriptors[name]; exists {
		return errors.DescriptorInvalid(name, "descriptor already registered")
	}
	r.descriptors[name] = d
	return nil
}

// Unregister removes the named descriptor if present
func (r *Registry) Unregister(name string) {
	delete(r.descriptors, name)
}

// Get returns the descriptor with the given name
func (r *Registry) Get(name string) (Descriptor, error) {
	d, ok := r.descriptors[name]
	if !ok {
		return nil, errors.DescriptorNotFound(name)
	}
	return d, nil
}

// List returns all registered descriptors, sorted by name
func (r *Registry) List() []Descriptor {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Descriptor, 0, len(names))
	for _, name := range names {
		result = append(result, r.descriptors[name])
	}
	return result
}

// FindForEvent returns the descriptors that can handle the given event type,
// sorted by name
func (r *Registry) FindForEvent(eventType string) []Descriptor {
	result := make([]Descriptor, 0)
	for _, d := range r.List() {
		if d.HandlesEvent(eventType) {
			result = append(result, d)
		}
	}
	return result
}
