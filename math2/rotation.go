package math2

import "math"

// Rotation is a 2D orientation, stored as its sine and cosine so that
// repeated composition does not need a trip through math.Sin/math.Cos.
// The zero value (Sin 0, Cos 0) is not a valid rotation; use
// IdentityRotation or NewRotation(0) for the identity.
type Rotation struct {
	Sin, Cos float64
}

// IdentityRotation is the zero-angle rotation.
var IdentityRotation = Rotation{Sin: 0, Cos: 1}

// NewRotation builds a Rotation from an angle in radians.
func NewRotation(angle float64) Rotation {
	return Rotation{Sin: math.Sin(angle), Cos: math.Cos(angle)}
}

// Angle returns the angle in radians represented by r.
func (r Rotation) Angle() float64 { return math.Atan2(r.Sin, r.Cos) }

// Rotate applies r to v.
func (r Rotation) Rotate(v Vec2) Vec2 {
	return Vec2{
		X: r.Cos*v.X - r.Sin*v.Y,
		Y: r.Sin*v.X + r.Cos*v.Y,
	}
}

// InvRotate applies the inverse (transpose) of r to v.
func (r Rotation) InvRotate(v Vec2) Vec2 {
	return Vec2{
		X: r.Cos*v.X + r.Sin*v.Y,
		Y: -r.Sin*v.X + r.Cos*v.Y,
	}
}

// Mul composes r followed by a (a applied in the frame produced by r).
func (r Rotation) Mul(a Rotation) Rotation {
	return Rotation{
		Sin: r.Sin*a.Cos + r.Cos*a.Sin,
		Cos: r.Cos*a.Cos - r.Sin*a.Sin,
	}
}

// Integrate advances r by angular velocity omega over dt seconds,
// renormalizing so that repeated integration does not drift off the
// unit circle.
func (r Rotation) Integrate(omega, dt float64) Rotation {
	// Small-angle update: d(sin,cos)/dt = omega*(cos,-sin).
	sin := r.Sin + omega*dt*r.Cos
	cos := r.Cos - omega*dt*r.Sin
	l := math.Sqrt(sin*sin + cos*cos)
	if l < Epsilon {
		return IdentityRotation
	}
	return Rotation{Sin: sin / l, Cos: cos / l}
}

// Transform is a rigid 2D pose: a position and an orientation.
type Transform struct {
	Pos Vec2
	Rot Rotation
}

// Apply maps a body-local point to world space.
func (t Transform) Apply(local Vec2) Vec2 {
	return t.Rot.Rotate(local).Add(t.Pos)
}

// ApplyInv maps a world point into this transform's local space.
func (t Transform) ApplyInv(world Vec2) Vec2 {
	return t.Rot.InvRotate(world.Sub(t.Pos))
}
