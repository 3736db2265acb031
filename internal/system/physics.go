package system

import (
	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/physics"
)

// PhysicsSystem moves non-flocking entities: integrate, wrap, and turn the
// segment along the velocity. No steering.
type PhysicsSystem struct {
	ecs.Base
	set    *component.Set
	bounds physics.Bounds
}

func NewPhysicsSystem(set *component.Set) ecs.SystemFactory {
	return func(w *ecs.World) (ecs.System, error) {
		b, err := boundsOf(w)
		if err != nil {
			return nil, err
		}
		return &PhysicsSystem{
			Base:   ecs.NewBase("physics", set.Position, set.Velocity, set.Drift),
			set:    set,
			bounds: b,
		}, nil
	}
}

func (s *PhysicsSystem) OnEntity(w *ecs.World, e *ecs.Entity) error {
	pos, err := ecs.Get[component.Position](e, s.set.Position)
	if err != nil {
		return err
	}
	vel, err := ecs.Get[component.Velocity](e, s.set.Velocity)
	if err != nil {
		return err
	}
	pos.Pos = physics.Step(pos.Pos, vel.Vel, w.DeltaTime(), s.bounds)
	if !vel.Vel.IsZero() {
		pos.Rot = vel.Vel.HeadingDeg()
	}
	return nil
}
