package vmath

import "math"

// Mat3 is a row-major 3x3 matrix acting on homogeneous 2D coordinates.
type Mat3 [3][3]float64

func Translation(x, y float64) Mat3 {
	return Mat3{
		{1, 0, x},
		{0, 1, y},
		{0, 0, 1},
	}
}

// Rotation rotates counter-clockwise (in y-up terms) by angle degrees.
func Rotation(angle float64) Mat3 {
	rad := DegToRad(angle)
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// MulVec transforms the point v (w = 1).
func (m Mat3) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2],
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2],
	}
}
