package component

import "github.com/flockworks/boids/internal/vmath"

// Position is where an entity is and, for line-shaped entities, the
// segment it draws: Dir rotated by Rot degrees, starting at Pos.
// Pure data, zero methods — systems do the math.
type Position struct {
	Pos vmath.Vec2
	Dir vmath.Vec2
	Rot float64 // degrees
}

// Velocity in field units per second.
type Velocity struct {
	Vel vmath.Vec2
}

// Boid marks a flocking agent.
type Boid struct {
	Predator bool
}

// Drift marks a non-flocking entity that still moves and wraps.
type Drift struct{}

// Spin rotates an entity's segment at a fixed rate.
type Spin struct {
	DegPerSec float64
}
