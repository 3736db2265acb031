package component

import (
	"fmt"
	"image/color"

	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/vmath"
)

// Component names as they appear in the registry.
const (
	NamePosition   = "position"
	NameVelocity   = "velocity"
	NameBoid       = "boid"
	NameDrift      = "drift"
	NameSpin       = "spin"
	NameRenderable = "renderable"
)

// DefaultColor is the stroke color of a renderable nobody configured.
var DefaultColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

// Set holds the descriptors of every component the simulation uses. It is
// built once at startup and passed to systems and spawners.
type Set struct {
	Position   *ecs.Component
	Velocity   *ecs.Component
	Boid       *ecs.Component
	Drift      *ecs.Component
	Spin       *ecs.Component
	Renderable *ecs.Component
}

// Register defines all components in reg.
func Register(reg *ecs.Registry) (*Set, error) {
	s := &Set{}
	var err error
	if s.Position, err = ecs.Define(reg, NamePosition, Position{Dir: vmath.V(8, 0)}); err != nil {
		return nil, fmt.Errorf("define %s: %w", NamePosition, err)
	}
	if s.Velocity, err = ecs.Define(reg, NameVelocity, Velocity{}); err != nil {
		return nil, fmt.Errorf("define %s: %w", NameVelocity, err)
	}
	if s.Boid, err = ecs.Define(reg, NameBoid, Boid{}); err != nil {
		return nil, fmt.Errorf("define %s: %w", NameBoid, err)
	}
	if s.Drift, err = ecs.Define(reg, NameDrift, Drift{}); err != nil {
		return nil, fmt.Errorf("define %s: %w", NameDrift, err)
	}
	if s.Spin, err = ecs.Define(reg, NameSpin, Spin{}); err != nil {
		return nil, fmt.Errorf("define %s: %w", NameSpin, err)
	}
	if s.Renderable, err = ecs.Define(reg, NameRenderable, Renderable{Visible: true, Color: DefaultColor, Width: 1}); err != nil {
		return nil, fmt.Errorf("define %s: %w", NameRenderable, err)
	}
	return s, nil
}

// BoidArchetype is the component list of a flocking agent.
func (s *Set) BoidArchetype() []*ecs.Component {
	return []*ecs.Component{s.Position, s.Velocity, s.Boid, s.Renderable}
}

// DrifterArchetype is the component list of a physics-only mover.
func (s *Set) DrifterArchetype() []*ecs.Component {
	return []*ecs.Component{s.Position, s.Velocity, s.Drift, s.Renderable}
}

// LineArchetype is the component list of a spinning segment.
func (s *Set) LineArchetype() []*ecs.Component {
	return []*ecs.Component{s.Position, s.Spin, s.Renderable}
}
