package physics

import (
	"math"

	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

// ConstraintKind distinguishes the four joint kinds bodies can be
// connected with. Each reduces, at the solver, to one or two scalar
// constraints.
type ConstraintKind int

const (
	RigidDistance ConstraintKind = iota
	SoftDistance
	RigidRevolute
	SoftRevolute
)

// Constraint is a user-created joint between two bodies.
type Constraint struct {
	Kind ConstraintKind
	A, B handle.Handle

	// RestLength is the distance joints are held at.
	RestLength float64

	// LocalAnchorA/B are the body-local anchors revolute joints pin
	// together; distance joints anchor at each body's origin.
	LocalAnchorA, LocalAnchorB math2.Vec2

	FrequencyHz   float64
	DampingRatio  float64

	// Warm-started Lagrange multipliers: one scalar for distance
	// joints, one per axis (x, y) for revolute joints.
	lambda [2]float64
}

// IsSoft reports whether the joint uses compliance instead of a hard
// constraint.
func (c *Constraint) IsSoft() bool {
	return c.Kind == SoftDistance || c.Kind == SoftRevolute
}

// IsRevolute reports whether the joint is a 2-axis pivot constraint
// rather than a 1-axis distance constraint.
func (c *Constraint) IsRevolute() bool {
	return c.Kind == RigidRevolute || c.Kind == SoftRevolute
}

// NewDistanceJoint builds a rigid or soft distance joint pinning a and
// b's origins at the given rest distance. freqHz == 0 means rigid.
func NewDistanceJoint(a, b handle.Handle, distance, freqHz, dampingRatio float64) Constraint {
	kind := RigidDistance
	if freqHz > 0 {
		kind = SoftDistance
	}
	return Constraint{Kind: kind, A: a, B: b, RestLength: distance, FrequencyHz: freqHz, DampingRatio: dampingRatio}
}

// NewRevoluteJoint builds a rigid or soft revolute joint pinning a
// common world pivot, converting it immediately to body-local anchors
// so each body can be moved independently without the pivot drifting.
func NewRevoluteJoint(a handle.Handle, bodyA *Body, b handle.Handle, bodyB *Body, pivot math2.Vec2, freqHz, dampingRatio float64) Constraint {
	kind := RigidRevolute
	if freqHz > 0 {
		kind = SoftRevolute
	}
	return Constraint{
		Kind: kind, A: a, B: b,
		LocalAnchorA: bodyA.Pose.ApplyInv(pivot),
		LocalAnchorB: bodyB.Pose.ApplyInv(pivot),
		FrequencyHz:  freqHz, DampingRatio: dampingRatio,
	}
}

// softParams reduces (frequencyHz, dampingRatio) to the TGS-Soft bias
// rate and impulse/mass scaling factors used by the velocity solver,
// following the standard soft-constraint derivation (e.g. Box2D v3's
// b2MakeSoft): 0 Hz collapses to a fully rigid constraint (biasRate 0,
// massScale 1, impulseScale 0, no softening at all).
func softParams(freqHz, zeta, h float64) (biasRate, massScale, impulseScale float64) {
	if freqHz <= 0 {
		return 0, 1, 0
	}
	omega := 2 * math.Pi * freqHz
	a1 := 2*zeta + h*omega
	a2 := h * omega * a1
	a3 := 1 / (1 + a2)
	return omega / a1, a2 * a3, a3
}
