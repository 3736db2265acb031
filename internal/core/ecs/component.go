package ecs

import (
	"fmt"
	"reflect"
)

// ComponentID is the stable mask bit of a component within its Registry.
type ComponentID uint8

// Component describes a named state shape. New produces fresh state for
// one entity; results never share mutable references with each other or
// with the template.
type Component struct {
	id      ComponentID
	name    string
	factory func() any
}

func (c *Component) ID() ComponentID { return c.id }
func (c *Component) Name() string    { return c.name }

// New builds an independent state value (always a pointer to the
// template's type).
func (c *Component) New() any { return c.factory() }

func (c *Component) String() string {
	return fmt.Sprintf("%s#%d", c.name, c.id)
}

// Define registers a component named name whose default state is a deep
// copy of template. Templates containing channels, functions or unsafe
// pointers are rejected with ErrUnsafeTemplate.
func Define[T any](r *Registry, name string, template T) (*Component, error) {
	if err := checkTemplate(reflect.TypeOf(&template).Elem()); err != nil {
		return nil, fmt.Errorf("define %q: %w", name, err)
	}
	c := &Component{
		name:    name,
		factory: func() any { return cloneState(template) },
	}
	if err := r.add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDefine is Define for startup code where a failure is a programming error.
func MustDefine[T any](r *Registry, name string, template T) *Component {
	c, err := Define(r, name, template)
	if err != nil {
		panic(err)
	}
	return c
}
