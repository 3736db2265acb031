package system

import (
	"math"

	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
)

// ControlSystem drives clock-controlled entities: spinning segments turn
// by their rate times the tick delta. Rotation stays in [0, 360).
type ControlSystem struct {
	ecs.Base
	set *component.Set
}

func NewControlSystem(set *component.Set) ecs.SystemFactory {
	return func(_ *ecs.World) (ecs.System, error) {
		return &ControlSystem{
			Base: ecs.NewBase("control", set.Position, set.Spin),
			set:  set,
		}, nil
	}
}

func (s *ControlSystem) OnEntity(w *ecs.World, e *ecs.Entity) error {
	pos, err := ecs.Get[component.Position](e, s.set.Position)
	if err != nil {
		return err
	}
	spin, err := ecs.Get[component.Spin](e, s.set.Spin)
	if err != nil {
		return err
	}
	rot := math.Mod(pos.Rot+spin.DegPerSec*w.DeltaTime().Seconds(), 360)
	if rot < 0 {
		rot += 360
	}
	pos.Rot = rot
	return nil
}
