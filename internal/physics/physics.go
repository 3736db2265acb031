// Package physics integrates velocities into positions on a wrapping field.
package physics

import (
	"time"

	"github.com/flockworks/boids/internal/vmath"
)

// wrapInset keeps a wrapped position one unit inside the opposite edge so
// it does not cross back on the next tick.
const wrapInset = 1

// Bounds is the axis-aligned simulation field.
type Bounds struct {
	Min, Max vmath.Vec2
}

// NewBounds returns the field [0,w] x [0,h].
func NewBounds(w, h float64) Bounds {
	return Bounds{Max: vmath.V(w, h)}
}

func (b Bounds) Size() vmath.Vec2 { return b.Max.Sub(b.Min) }

func (b Bounds) Contains(p vmath.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Wrap teleports a position that left the field to the opposite edge.
// Positions inside the field are returned unchanged.
func (b Bounds) Wrap(p vmath.Vec2) vmath.Vec2 {
	switch {
	case p.X < b.Min.X:
		p.X = b.Max.X - wrapInset
	case p.X > b.Max.X:
		p.X = b.Min.X + wrapInset
	}
	switch {
	case p.Y < b.Min.Y:
		p.Y = b.Max.Y - wrapInset
	case p.Y > b.Max.Y:
		p.Y = b.Min.Y + wrapInset
	}
	return p
}

// Integrate moves pos by vel (units per second) over dt.
func Integrate(pos, vel vmath.Vec2, dt time.Duration) vmath.Vec2 {
	return pos.Add(vel.Scale(dt.Seconds()))
}

// Step integrates and wraps.
func Step(pos, vel vmath.Vec2, dt time.Duration, b Bounds) vmath.Vec2 {
	return b.Wrap(Integrate(pos, vel, dt))
}

// ClampSpeed rescales vel to exactly limit. A zero velocity is given the
// direction of vmath.UnitX.
func ClampSpeed(vel vmath.Vec2, limit float64) vmath.Vec2 {
	return vel.WithLen(limit)
}

// Segment returns the world-space endpoints of a line that starts at pos,
// has the length of dir and points at the absolute heading rot (degrees).
// The direction of dir itself is not used.
func Segment(pos, dir vmath.Vec2, rot float64) (from, to vmath.Vec2) {
	return pos, vmath.Translation(pos.X, pos.Y).MulVec(dir.RotateDeg(rot))
}
