package vmath

import "math"

// Vec2 is a 2D vector in field units.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) Equal(o Vec2) bool    { return v.X == o.X && v.Y == o.Y }
func (v Vec2) Approx(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// UnitX is returned by Unit for the zero vector.
var UnitX = Vec2{X: 1}

// Unit returns v scaled to length 1. The zero vector has no direction;
// it maps to UnitX so callers always get a finite unit vector.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return UnitX
	}
	return Vec2{v.X / l, v.Y / l}
}

// WithLen returns a vector pointing along v with length l.
func (v Vec2) WithLen(l float64) Vec2 {
	return v.Unit().Scale(l)
}

// RotateDeg points v at the absolute heading angle (degrees) keeping its
// magnitude.
func (v Vec2) RotateDeg(angle float64) Vec2 {
	return Rotation(angle).MulVec(Vec2{X: v.Len()})
}

// HeadingDeg is the angle of v from the positive x axis, in degrees.
func (v Vec2) HeadingDeg() float64 {
	return RadToDeg(math.Atan2(v.Y, v.X))
}

func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }
