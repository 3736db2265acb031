package ecs

import "fmt"

// System is a behavior unit dispatched once per tick. BeforeTick runs once
// before any OnEntity call of the same system; OnEntity runs for every
// entity holding all Requires components, in insertion order.
type System interface {
	Name() string
	Requires() []*Component
	BeforeTick(w *World) error
	OnEntity(w *World, e *Entity) error
}

// SystemFactory constructs a system once, with the World it will live in.
type SystemFactory func(w *World) (System, error)

// Base carries the name and required set of a system. Embedders must
// override OnEntity; the default fails on first dispatch.
type Base struct {
	name     string
	requires []*Component
}

func NewBase(name string, requires ...*Component) Base {
	return Base{name: name, requires: requires}
}

func (b Base) Name() string              { return b.name }
func (b Base) Requires() []*Component    { return b.requires }
func (b Base) BeforeTick(_ *World) error { return nil }

func (b Base) OnEntity(_ *World, e *Entity) error {
	return fmt.Errorf("%w: %s (entity %d)", ErrHookNotImplemented, b.name, e.id)
}
