package system

import (
	"errors"

	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/physics"
)

// GlobalBounds is the world global holding the field as physics.Bounds.
const GlobalBounds = "bounds"

var errNoBounds = errors.New("system: world has no " + GlobalBounds + " global")

func boundsOf(w *ecs.World) (physics.Bounds, error) {
	b, ok := ecs.GlobalAs[physics.Bounds](w, GlobalBounds)
	if !ok {
		return physics.Bounds{}, errNoBounds
	}
	return b, nil
}
