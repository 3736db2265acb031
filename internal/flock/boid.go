// Package flock computes boid steering from a pairwise distance table.
//
// A Boid is a view onto live component state: Pos and Vel point into the
// entity's components, so updates land in place and later boids in the
// same tick read earlier boids' new state.
package flock

import (
	"time"

	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/physics"
	"github.com/flockworks/boids/internal/vmath"
)

type Boid struct {
	ID       ecs.EntityID
	Pos      *vmath.Vec2
	Vel      *vmath.Vec2
	Predator bool
}

// Neighbors holds indices into the boid slice, in scan order. Separation
// is a subset of Alignment, which is a subset of Cohesion.
type Neighbors struct {
	Separation []int
	Alignment  []int
	Cohesion   []int
	// Predators within PredatorDetectionRange.
	Predators []int
}

// FindNeighbors scans boids in order and buckets every other boid by its
// tabled distance to boids[self].
func FindNeighbors(self int, boids []Boid, t *DistanceTable, p Params) Neighbors {
	var n Neighbors
	me := boids[self].ID
	for i, o := range boids {
		if i == self {
			continue
		}
		d, ok := t.Dist(me, o.ID)
		if !ok {
			continue
		}
		if d < p.CohesionRadius {
			n.Cohesion = append(n.Cohesion, i)
			if d < p.AlignmentRadius {
				n.Alignment = append(n.Alignment, i)
				if d < p.SeparationRadius {
					n.Separation = append(n.Separation, i)
				}
			}
		}
		if o.Predator && d < p.PredatorDetectionRange {
			n.Predators = append(n.Predators, i)
		}
	}
	return n
}

// Avoid nudges vel away from the first field edge (x-min, x-max, y-min,
// y-max) that pos is within Margin of. Only one edge applies per call.
func Avoid(pos, vel vmath.Vec2, p Params) vmath.Vec2 {
	b := p.Bounds
	switch {
	case pos.X < b.Min.X+p.Margin:
		vel.X += p.NudgeFactor
	case pos.X > b.Max.X-p.Margin:
		vel.X -= p.NudgeFactor
	case pos.Y < b.Min.Y+p.Margin:
		vel.Y += p.NudgeFactor
	case pos.Y > b.Max.Y-p.Margin:
		vel.Y -= p.NudgeFactor
	}
	return vel
}

// Hunt steers a predator at its target: the first boid of the cohesion
// set in scan order, which is not necessarily the closest. The result is
// clamped to the predator speed.
func Hunt(self int, boids []Boid, n Neighbors, vel vmath.Vec2, p Params) vmath.Vec2 {
	if len(n.Cohesion) > 0 {
		target := boids[n.Cohesion[0]]
		vel = vel.Add(target.Pos.Sub(*boids[self].Pos).Scale(p.AttackFactor))
	}
	return physics.ClampSpeed(vel, p.PredatorSpeed())
}

// Flock applies separation, alignment, cohesion and predator avoidance
// to vel, then clamps it to SpeedLimit.
func Flock(self int, boids []Boid, n Neighbors, vel vmath.Vec2, p Params) vmath.Vec2 {
	pos := *boids[self].Pos

	var sep vmath.Vec2
	for _, i := range n.Separation {
		sep = sep.Add(pos.Sub(*boids[i].Pos))
	}
	vel = vel.Add(sep.Scale(p.SeparationFactor))

	if len(n.Alignment) > 1 {
		var sum vmath.Vec2
		for _, i := range n.Alignment {
			sum = sum.Add(*boids[i].Vel)
		}
		avg := sum.Scale(1 / float64(len(n.Alignment)))
		vel = vel.Add(avg.Scale(p.VelocityFactor))
	}

	if len(n.Cohesion) > 2 {
		var sum vmath.Vec2
		for _, i := range n.Cohesion {
			sum = sum.Add(*boids[i].Pos)
		}
		avg := sum.Scale(1 / float64(len(n.Cohesion)))
		vel = vel.Sub(pos.Sub(avg).Scale(p.CohesionFactor))
	}

	var flee vmath.Vec2
	for _, i := range n.Predators {
		flee = flee.Add(pos.Sub(*boids[i].Pos))
	}
	vel = vel.Add(flee.Scale(p.PredatorFactor))

	return physics.ClampSpeed(vel, p.SpeedLimit)
}

// Steer computes the new velocity of boids[self]: edge avoidance, then
// either the predator rule or the flocking rules. Both paths end clamped.
func Steer(self int, boids []Boid, n Neighbors, p Params) vmath.Vec2 {
	b := boids[self]
	vel := Avoid(*b.Pos, *b.Vel, p)
	if b.Predator {
		return Hunt(self, boids, n, vel, p)
	}
	return Flock(self, boids, n, vel, p)
}

// Update steers boids[self] and integrates it over dt, writing through the
// Pos and Vel references. Velocity is clamped before it is scaled by dt,
// for prey and predators alike.
func Update(self int, boids []Boid, t *DistanceTable, dt time.Duration, p Params) Neighbors {
	n := FindNeighbors(self, boids, t, p)
	b := boids[self]
	*b.Vel = Steer(self, boids, n, p)
	*b.Pos = physics.Step(*b.Pos, *b.Vel, dt, p.Bounds)
	return n
}
