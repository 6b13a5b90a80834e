// Package math2 provides the 2D vector, rotation, and bounding-box
// primitives the physics engine is built on. Everything here is pure
// and stateless: no type holds a reference to simulation state.
package math2

import "math"

// Epsilon is the tolerance used for near-zero and near-equal comparisons.
const Epsilon = 1e-9

// Vec2 is a 2 element vector. It doubles as a point.
type Vec2 struct {
	X float64
	Y float64
}

// Zero2 is the zero vector.
var Zero2 = Vec2{}

// Eq (==) returns true if v and a have exactly the same coordinates.
func (v Vec2) Eq(a Vec2) bool { return v.X == a.X && v.Y == a.Y }

// AlmostEq (~=) returns true if v and a are within Epsilon of each other.
func (v Vec2) AlmostEq(a Vec2) bool {
	return math.Abs(v.X-a.X) < Epsilon && math.Abs(v.Y-a.Y) < Epsilon
}

// Add returns v+a.
func (v Vec2) Add(a Vec2) Vec2 { return Vec2{v.X + a.X, v.Y + a.Y} }

// Sub returns v-a.
func (v Vec2) Sub(a Vec2) Vec2 { return Vec2{v.X - a.X, v.Y - a.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// Dot returns the dot product of v and a.
func (v Vec2) Dot(a Vec2) float64 { return v.X*a.X + v.Y*a.Y }

// Cross returns the 2D "cross product" (scalar): v.X*a.Y - v.Y*a.X.
func (v Vec2) Cross(a Vec2) float64 { return v.X*a.Y - v.Y*a.X }

// CrossScalar returns the vector s×v, the 2D analogue of a scalar
// cross a vector: perpendicular to v, scaled by s.
func (v Vec2) CrossScalar(s float64) Vec2 { return Vec2{-s * v.Y, s * v.X} }

// Perp returns the vector rotated 90° counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 { return v.Dot(v) }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Dist returns the distance between v and a.
func (v Vec2) Dist(a Vec2) float64 { return v.Sub(a).Len() }

// DistSq returns the squared distance between v and a.
func (v Vec2) DistSq(a Vec2) float64 { return v.Sub(a).LenSq() }

// Unit returns v normalized to length 1. The zero vector is returned
// unchanged rather than producing NaNs.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp linearly interpolates between v and a by fraction t in [0,1].
func (v Vec2) Lerp(a Vec2, t float64) Vec2 {
	return Vec2{v.X + (a.X-v.X)*t, v.Y + (a.Y-v.Y)*t}
}

// Min returns the component-wise minimum of v and a.
func (v Vec2) Min(a Vec2) Vec2 { return Vec2{math.Min(v.X, a.X), math.Min(v.Y, a.Y)} }

// Max returns the component-wise maximum of v and a.
func (v Vec2) Max(a Vec2) Vec2 { return Vec2{math.Max(v.X, a.X), math.Max(v.Y, a.Y)} }
