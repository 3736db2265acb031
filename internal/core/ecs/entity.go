package ecs

import (
	"fmt"
	"sort"
)

// EntityID is assigned by the World on insertion, starting at 1. Zero
// means the entity has not been inserted yet. IDs are never reused.
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// Entity is an id plus the state of each component it was built with.
type Entity struct {
	id         EntityID
	components map[string]any
	mask       Mask
}

// NewEntity builds one fresh state value per descriptor.
func NewEntity(descs ...*Component) *Entity {
	e := &Entity{components: make(map[string]any, len(descs))}
	for _, d := range descs {
		e.components[d.name] = d.New()
		e.mask |= 1 << d.id
	}
	return e
}

func (e *Entity) ID() EntityID { return e.id }

// Has reports whether the entity holds c.
func (e *Entity) Has(c *Component) bool {
	_, ok := e.components[c.name]
	return ok
}

// Components lists the entity's component names, sorted.
func (e *Entity) Components() []string {
	names := make([]string, 0, len(e.components))
	for n := range e.components {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (e *Entity) String() string {
	return fmt.Sprintf("entity(%d)%v", e.id, e.Components())
}

// Get returns the typed state of c on e. A missing component or a state
// of another type is a configuration error.
func Get[T any](e *Entity, c *Component) (*T, error) {
	raw, ok := e.components[c.name]
	if !ok {
		return nil, fmt.Errorf("%w: %s on entity %d", ErrMissingComponent, c.name, e.id)
	}
	s, ok := raw.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: %s on entity %d is %T", ErrComponentType, c.name, e.id, raw)
	}
	return s, nil
}
