package system

import (
	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/render"
)

// Census counts the population for status displays.
func Census(w *ecs.World, set *component.Set) render.Stats {
	st := render.Stats{
		Tick:     w.Ticks(),
		Entities: len(w.Entities()),
		Delta:    w.DeltaTime(),
		Running:  w.Running(),
	}
	for _, e := range w.Entities() {
		b, err := ecs.Get[component.Boid](e, set.Boid)
		if err != nil {
			continue
		}
		st.Boids++
		if b.Predator {
			st.Predators++
		}
	}
	return st
}
