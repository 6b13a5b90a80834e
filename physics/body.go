package physics

import (
	"github.com/jsvd/rigid2d/math2"
)

// BodyKind is the motion category of a body.
type BodyKind int

const (
	BodyStatic BodyKind = iota
	BodyDynamic
	BodyKinematic
)

// Material holds the surface properties used during contact resolution.
type Material struct {
	Restitution float64
	Friction    float64
}

// DefaultMaterial is what NewBody uses when def.Material is the zero
// Material.
var DefaultMaterial = Material{Restitution: 0.3, Friction: 0.5}

// Filter is the 16-bit layer/mask collision filter pair. Two bodies
// collide only when the test in Collides is symmetric-true.
type Filter struct {
	Layer uint16
	Mask  uint16
}

// DefaultFilter collides with everything by default.
var DefaultFilter = Filter{Layer: 1, Mask: 0xFFFF}

// Collides implements the symmetric filter test from the data model:
// (a.layer & b.mask) != 0 && (b.layer & a.mask) != 0.
func Collides(a, b Filter) bool {
	return a.Layer&b.Mask != 0 && b.Layer&a.Mask != 0
}

// BodyDef describes a body to be created. Zero-valued optional fields
// take the documented defaults.
type BodyDef struct {
	Kind     BodyKind
	Shape    Shape
	Pos      math2.Vec2
	Angle    float64
	Mass     float64 // default 1.0; ignored unless Kind == BodyDynamic
	Material Material
	Filter   Filter
}

// Body is a rigid occupant of the world. Its zero value is not usable;
// construct one with NewBody.
type Body struct {
	Kind  BodyKind
	Shape Shape
	Pose  math2.Transform

	LinVel math2.Vec2
	AngVel float64

	InvMass float64
	InvI    float64

	Material Material
	Filter   Filter

	force  math2.Vec2
	torque float64

	Sleeping bool
	idleTime float64

	island int // transient island tag, valid only within one sub-step
}

// NewBody builds a Body from def, computing inverse mass and inverse
// inertia from its shape. Static and kinematic bodies always have
// infinite mass (InvMass == 0) regardless of def.Mass. A body with an
// AABB shape always has InvI == 0, so contact and joint impulses never
// turn it.
func NewBody(def BodyDef) Body {
	mat := def.Material
	if mat == (Material{}) {
		mat = DefaultMaterial
	}
	filter := def.Filter
	if filter == (Filter{}) {
		filter = DefaultFilter
	}

	b := Body{
		Kind:     def.Kind,
		Shape:    def.Shape,
		Pose:     math2.Transform{Pos: def.Pos, Rot: math2.NewRotation(def.Angle)},
		Material: mat,
		Filter:   filter,
	}

	if def.Kind == BodyDynamic {
		mass := def.Mass
		if mass <= 0 {
			mass = 1.0
		}
		b.InvMass = 1.0 / mass
		inertia := def.Shape.momentOfInertia(mass)
		if def.Shape.Kind != ShapeAABB && inertia > math2.Epsilon {
			b.InvI = 1.0 / inertia
		}
	}
	return b
}

// WorldAABB returns the body's current world-space AABB, expanded by margin.
func (b *Body) WorldAABB(margin float64) math2.AABB {
	return b.Shape.worldAABB(b.Pose).Expand(margin)
}

// Wake clears sleep state. Static bodies are never awake or asleep in
// a meaningful sense but the flag is harmless on them.
func (b *Body) Wake() {
	b.Sleeping = false
	b.idleTime = 0
}

// ApplyForce accumulates a force to be integrated on the next
// sub-step, and wakes the body. A no-op on static/kinematic bodies.
func (b *Body) ApplyForce(f math2.Vec2) {
	if b.Kind != BodyDynamic {
		return
	}
	b.Wake()
	b.force = b.force.Add(f)
}

// ApplyTorque accumulates torque the same way ApplyForce accumulates force.
func (b *Body) ApplyTorque(t float64) {
	if b.Kind != BodyDynamic {
		return
	}
	b.Wake()
	b.torque += t
}

// ApplyImpulse immediately changes linear velocity by impulse*invMass,
// and wakes the body.
func (b *Body) ApplyImpulse(imp math2.Vec2) {
	if b.Kind != BodyDynamic {
		return
	}
	b.Wake()
	b.LinVel = b.LinVel.Add(imp.Scale(b.InvMass))
}

// ApplyImpulseAt applies imp at world point p, producing both a linear
// and an angular velocity change. Unlike ApplyImpulse it does not wake
// the body or reset its idle timer: the solver applies every contact
// and joint impulse through it.
func (b *Body) ApplyImpulseAt(imp math2.Vec2, p math2.Vec2) {
	if b.Kind != BodyDynamic {
		return
	}
	b.LinVel = b.LinVel.Add(imp.Scale(b.InvMass))
	r := p.Sub(b.Pose.Pos)
	b.AngVel += b.InvI * r.Cross(imp)
}

// clearForces resets the per-sub-step force accumulator.
func (b *Body) clearForces() {
	b.force = math2.Vec2{}
	b.torque = 0
}

// integrateForces applies gravity and the accumulated force to
// velocity: v += h*(F*invMass + g); ω += h*τ*invI. Static and
// kinematic bodies never integrate forces.
func (b *Body) integrateForces(h float64, gravity math2.Vec2) {
	if b.Kind != BodyDynamic || b.Sleeping {
		return
	}
	b.LinVel = b.LinVel.Add(b.force.Scale(b.InvMass).Add(gravity).Scale(h))
	b.AngVel += h * b.torque * b.InvI
}

// integratePositions applies velocity to pose: x += h*v; θ += h*ω.
func (b *Body) integratePositions(h float64) {
	if b.Kind == BodyStatic || b.Sleeping {
		return
	}
	b.Pose.Pos = b.Pose.Pos.Add(b.LinVel.Scale(h))
	b.Pose.Rot = b.Pose.Rot.Integrate(b.AngVel, h)
}

// speedSq returns the squared linear speed, used by the sleep heuristic.
func (b *Body) speedSq() float64 { return b.LinVel.LenSq() }

// broadPhaseActive reports whether b can participate in a new contact
// without first being woken: a kinematic body is always active (it
// may be moving under direct host control without ever setting
// Sleeping), a dynamic body is active only while awake, and a static
// body is never active. A pair with neither side active is guaranteed
// to produce no motion and is safe for the broad phase to skip
// entirely, which is what keeps a sleeping body asleep while resting
// against a static body.
func (b *Body) broadPhaseActive() bool {
	return b.Kind == BodyKinematic || (b.Kind == BodyDynamic && !b.Sleeping)
}
