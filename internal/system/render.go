package system

import (
	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/physics"
	"github.com/flockworks/boids/internal/render"
)

// RenderSystem strokes one segment per visible renderable. Register it
// last so it sees the tick's final positions. BeforeTick clears the
// surface.
type RenderSystem struct {
	ecs.Base
	set     *component.Set
	surface render.Surface
}

func NewRenderSystem(set *component.Set, surface render.Surface) ecs.SystemFactory {
	return func(_ *ecs.World) (ecs.System, error) {
		return &RenderSystem{
			Base:    ecs.NewBase("render", set.Position, set.Renderable),
			set:     set,
			surface: surface,
		}, nil
	}
}

func (s *RenderSystem) BeforeTick(_ *ecs.World) error {
	s.surface.Clear()
	return nil
}

func (s *RenderSystem) OnEntity(_ *ecs.World, e *ecs.Entity) error {
	r, err := ecs.Get[component.Renderable](e, s.set.Renderable)
	if err != nil {
		return err
	}
	if !r.Visible {
		return nil
	}
	pos, err := ecs.Get[component.Position](e, s.set.Position)
	if err != nil {
		return err
	}
	from, to := physics.Segment(pos.Pos, pos.Dir, pos.Rot)
	s.surface.MoveTo(from.X, from.Y)
	s.surface.LineTo(to.X, to.Y)
	s.surface.Stroke(r.Color, r.Width)
	return nil
}
