package ecs

import "fmt"

// maxComponents is the number of bits in a Mask.
const maxComponents = 64

// Registry assigns mask bits to component descriptors and guarantees
// unique names. One registry is built at startup and shared by
// everything that defines or resolves components.
type Registry struct {
	byName     map[string]*Component
	components []*Component
}

func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]*Component, 16),
		components: make([]*Component, 0, 16),
	}
}

func (r *Registry) add(c *Component) error {
	if _, ok := r.byName[c.name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateComponent, c.name)
	}
	if len(r.components) >= maxComponents {
		return fmt.Errorf("%w: limit %d", ErrTooManyComponents, maxComponents)
	}
	c.id = ComponentID(len(r.components))
	r.byName[c.name] = c
	r.components = append(r.components, c)
	return nil
}

// Lookup resolves a component by name.
func (r *Registry) Lookup(name string) (*Component, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Len returns the number of defined components.
func (r *Registry) Len() int { return len(r.components) }
