// Package rigid2d is a deterministic 2D rigid-body physics engine. It
// simulates circles, axis-aligned boxes, and convex polygons under
// gravity, resolves contacts with restitution and friction, holds
// bodies together with rigid and compliant distance/revolute joints,
// and answers AABB and raycast queries.
//
// The package exposes a flat, handle-based API so that a scripting or
// game layer above it can treat it as a service: create a world,
// create bodies, step time, read state back. It owns exactly one
// World at a time: calling CreateWorld again replaces whatever world
// already exists.
//
// Every operation is nil-safe when called before CreateWorld or after
// DestroyWorld: mutators no-op and readers return zero values or empty
// slices, a headless-mode contract for ids that were never allocated.
package rigid2d

import (
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
	"github.com/jsvd/rigid2d/physics"
)

// Shape tags for CreateBody's shapeTag parameter.
const (
	ShapeCircle = int(physics.ShapeCircle)
	ShapeAABB   = int(physics.ShapeAABB)
)

// Body kinds for CreateBody/CreatePolygonBody's kind parameter.
const (
	KindStatic    = int(physics.BodyStatic)
	KindDynamic   = int(physics.BodyDynamic)
	KindKinematic = int(physics.BodyKinematic)
)

// maxBodies and maxConstraints are the compile-time capacity ceiling
// referenced by the CapacityExceeded error condition: past this,
// creation calls return the zero handle rather than growing without
// bound.
const (
	maxBodies      = 1 << 20
	maxConstraints = 1 << 20
)

// world is the live singleton simulation context. There is at most
// one at a time; a second CreateWorld call replaces it wholesale.
type world struct {
	sim       *physics.World
	sessionID string
}

var current *world

// CreateWorld creates the process-wide world with gravity (gx, gy),
// replacing (and discarding) any world already live.
func CreateWorld(gx, gy float64) {
	if current != nil {
		log.Printf("rigid2d: world %s replaced", current.sessionID)
	}
	cfg := physics.DefaultSolverConfig()
	cfg.Gravity = math2.Vec2{X: gx, Y: gy}
	current = &world{sim: physics.NewWorld(cfg), sessionID: uuid.NewString()}
	log.Printf("rigid2d: world %s created, gravity=(%g, %g)", current.sessionID, gx, gy)
}

// DestroyWorld frees the live world and everything in it. A no-op if
// no world is live.
func DestroyWorld() {
	if current == nil {
		return
	}
	log.Printf("rigid2d: world %s destroyed", current.sessionID)
	current = nil
}

// Step advances the live world by dt seconds of wall-clock time,
// internally running as many fixed sub-steps as the accumulator
// allows. A no-op if no world is live or dt is non-positive/non-finite.
func Step(dt float64) {
	if current == nil {
		return
	}
	current.sim.Step(dt)
}

func encodeHandle(h handle.Handle) float64 { return float64(h) }
func decodeHandle(id float64) handle.Handle {
	if id <= 0 || math.IsNaN(id) {
		return 0
	}
	return handle.Handle(id)
}

func liveBody(id float64) *physics.Body {
	if current == nil {
		return nil
	}
	b, ok := current.sim.Bodies.Get(decodeHandle(id))
	if !ok {
		return nil
	}
	return b
}

// CreateBody creates a circle or AABB body. shapeTag selects the
// shape: ShapeCircle reads p1 as radius (p2 unused); ShapeAABB reads
// (p1, p2) as (halfW, halfH). Returns 0 if no world is live, the
// shape tag is unrecognized, or capacity is exhausted.
func CreateBody(kind, shapeTag int, p1, p2, x, y, mass, restitution, friction float64, layer, mask uint16) float64 {
	if current == nil || current.sim.Bodies.Len() >= maxBodies {
		return 0
	}
	var shape physics.Shape
	switch shapeTag {
	case ShapeCircle:
		shape = physics.NewCircleShape(p1)
	case ShapeAABB:
		shape = physics.NewAABBShape(p1, p2)
	default:
		return 0
	}
	return encodeHandle(current.sim.CreateBody(bodyDef(kind, shape, x, y, 0, mass, restitution, friction, layer, mask)))
}

// CreatePolygonBody creates a convex polygon body from a flat
// [x0,y0,x1,y1,...] vertex array. Returns 0 for a non-convex,
// too-small, too-large, or degenerate polygon (InvalidShape), or if no
// world is live.
func CreatePolygonBody(kind int, flatVertexArray []float64, x, y, mass, restitution, friction float64, layer, mask uint16) float64 {
	if current == nil || current.sim.Bodies.Len() >= maxBodies {
		return 0
	}
	if len(flatVertexArray)%2 != 0 {
		return 0
	}
	verts := make([]math2.Vec2, len(flatVertexArray)/2)
	for i := range verts {
		verts[i] = math2.Vec2{X: flatVertexArray[2*i], Y: flatVertexArray[2*i+1]}
	}
	shape, err := physics.NewPolygonShape(verts)
	if err != nil {
		return 0
	}
	return encodeHandle(current.sim.CreateBody(bodyDef(kind, shape, x, y, 0, mass, restitution, friction, layer, mask)))
}

func bodyDef(kind int, shape physics.Shape, x, y, angle, mass, restitution, friction float64, layer, mask uint16) physics.BodyDef {
	return physics.BodyDef{
		Kind:     physics.BodyKind(kind),
		Shape:    shape,
		Pos:      math2.Vec2{X: x, Y: y},
		Angle:    angle,
		Mass:     mass,
		Material: physics.Material{Restitution: restitution, Friction: friction},
		Filter:   physics.Filter{Layer: layer, Mask: mask},
	}
}

// RemoveBody removes a body, its cached manifolds, and every
// constraint that referenced it. Returns false for an unknown id or
// no live world.
func RemoveBody(id float64) bool {
	if current == nil {
		return false
	}
	return current.sim.RemoveBody(decodeHandle(id))
}

// SetBodyPosition teleports a body and wakes it. A no-op on static
// bodies, an unknown id, or no live world.
func SetBodyPosition(id, x, y, angle float64) {
	b := liveBody(id)
	if b == nil || b.Kind == physics.BodyStatic {
		return
	}
	b.Wake()
	b.Pose = math2.Transform{Pos: math2.Vec2{X: x, Y: y}, Rot: math2.NewRotation(angle)}
}

// SetBodyVelocity overwrites linear velocity and wakes the body. A
// no-op on static bodies.
func SetBodyVelocity(id, vx, vy float64) {
	b := liveBody(id)
	if b == nil || b.Kind == physics.BodyStatic {
		return
	}
	b.Wake()
	b.LinVel = math2.Vec2{X: vx, Y: vy}
}

// SetBodyAngularVelocity overwrites angular velocity and wakes the
// body. A no-op on static bodies.
func SetBodyAngularVelocity(id, omega float64) {
	b := liveBody(id)
	if b == nil || b.Kind == physics.BodyStatic {
		return
	}
	b.Wake()
	b.AngVel = omega
}

// ApplyForce accumulates a force to be integrated on the next
// sub-step and wakes the body. A no-op on static/kinematic bodies or
// an unknown id.
func ApplyForce(id, fx, fy float64) {
	if b := liveBody(id); b != nil {
		b.ApplyForce(math2.Vec2{X: fx, Y: fy})
	}
}

// ApplyImpulse immediately changes linear velocity by impulse·invMass
// and wakes the body. A no-op on static/kinematic bodies.
func ApplyImpulse(id, ix, iy float64) {
	if b := liveBody(id); b != nil {
		b.ApplyImpulse(math2.Vec2{X: ix, Y: iy})
	}
}

// SetCollisionLayers updates a body's filter; it takes effect on the
// next broad-phase refresh.
func SetCollisionLayers(id float64, layer, mask uint16) {
	if b := liveBody(id); b != nil {
		b.Filter = physics.Filter{Layer: layer, Mask: mask}
	}
}

// GetBodyState returns [x, y, angle, vx, vy, ω, sleeping] for id, or
// an all-zero record for an unknown id / no live world.
func GetBodyState(id float64) [7]float64 {
	b := liveBody(id)
	if b == nil {
		return [7]float64{}
	}
	sleeping := 0.0
	if b.Sleeping {
		sleeping = 1
	}
	return [7]float64{
		b.Pose.Pos.X, b.Pose.Pos.Y, b.Pose.Rot.Angle(),
		b.LinVel.X, b.LinVel.Y, b.AngVel, sleeping,
	}
}

// GetAllBodyStates returns one [id, x, y, vx, vy, angle, ω, sleeping]
// record per live body, flattened, in insertion order.
func GetAllBodyStates() []float64 {
	if current == nil {
		return nil
	}
	out := make([]float64, 0, current.sim.Bodies.Len()*8)
	current.sim.Bodies.Each(func(h handle.Handle, b *physics.Body) {
		sleeping := 0.0
		if b.Sleeping {
			sleeping = 1
		}
		out = append(out,
			encodeHandle(h), b.Pose.Pos.X, b.Pose.Pos.Y,
			b.LinVel.X, b.LinVel.Y, b.Pose.Rot.Angle(), b.AngVel, sleeping,
		)
	})
	return out
}

func createJoint(ct physics.Constraint) float64 {
	if current == nil || current.sim.Constraints.Len() >= maxConstraints {
		return 0
	}
	return encodeHandle(current.sim.CreateConstraint(ct))
}

// CreateDistanceJoint holds the origins of a and b at the given
// distance with a rigid constraint.
func CreateDistanceJoint(a, b, distance float64) float64 {
	return createJoint(physics.NewDistanceJoint(decodeHandle(a), decodeHandle(b), distance, 0, 0))
}

// CreateSoftDistanceJoint is CreateDistanceJoint with compliance: a
// damped spring at the given frequency and damping ratio.
func CreateSoftDistanceJoint(a, b, distance, freqHz, dampingRatio float64) float64 {
	return createJoint(physics.NewDistanceJoint(decodeHandle(a), decodeHandle(b), distance, freqHz, dampingRatio))
}

func revoluteJoint(a, b, px, py, freqHz, dampingRatio float64) float64 {
	if current == nil || current.sim.Constraints.Len() >= maxConstraints {
		return 0
	}
	ha, hb := decodeHandle(a), decodeHandle(b)
	bodyA, okA := current.sim.Bodies.Get(ha)
	bodyB, okB := current.sim.Bodies.Get(hb)
	if !okA || !okB {
		return 0
	}
	ct := physics.NewRevoluteJoint(ha, bodyA, hb, bodyB, math2.Vec2{X: px, Y: py}, freqHz, dampingRatio)
	return encodeHandle(current.sim.CreateConstraint(ct))
}

// CreateRevoluteJoint pins a common world pivot (px, py) on a and b
// with a rigid constraint, converted to body-local anchors at creation.
func CreateRevoluteJoint(a, b, px, py float64) float64 {
	return revoluteJoint(a, b, px, py, 0, 0)
}

// CreateSoftRevoluteJoint is CreateRevoluteJoint with compliance.
func CreateSoftRevoluteJoint(a, b, px, py, freqHz, dampingRatio float64) float64 {
	return revoluteJoint(a, b, px, py, freqHz, dampingRatio)
}

// RemoveConstraint removes a joint. Returns false for an unknown id.
func RemoveConstraint(id float64) bool {
	if current == nil {
		return false
	}
	return current.sim.Constraints.Remove(decodeHandle(id))
}

// QueryAABB returns the ids of every body whose world AABB overlaps
// the box [minX,minY]..[maxX,maxY].
func QueryAABB(minX, minY, maxX, maxY float64) []float64 {
	if current == nil {
		return nil
	}
	hits := current.sim.QueryAABB(math2.NewAABB(math2.Vec2{X: minX, Y: minY}, math2.Vec2{X: maxX, Y: maxY}))
	out := make([]float64, len(hits))
	for i, h := range hits {
		out[i] = encodeHandle(h)
	}
	return out
}

// Raycast casts a ray and returns [id, hitX, hitY, distance], or an
// empty slice if nothing was hit within maxDistance (which defaults
// to 1000 if <= 0).
func Raycast(ox, oy, dx, dy, maxDistance float64) []float64 {
	if current == nil {
		return nil
	}
	if maxDistance <= 0 {
		maxDistance = 1000
	}
	hit, ok := current.sim.Raycast(math2.Vec2{X: ox, Y: oy}, math2.Vec2{X: dx, Y: dy}, maxDistance)
	if !ok {
		return nil
	}
	return []float64{encodeHandle(hit.Body), hit.Point.X, hit.Point.Y, hit.Distance}
}

// GetContacts returns one 7-tuple per contact point, [bodyA, bodyB,
// pointX, pointY, normalX, normalY, penetration], flattened into a
// single slice, for the current (post-Step) contact cache.
func GetContacts() []float64 {
	if current == nil {
		return nil
	}
	var out []float64
	for _, m := range current.sim.Manifolds() {
		bodyA, okA := current.sim.Bodies.Get(m.BodyA)
		if !okA {
			continue
		}
		for _, p := range m.Points {
			world := bodyA.Pose.Apply(p.LocalAnchorA)
			out = append(out,
				encodeHandle(m.BodyA), encodeHandle(m.BodyB),
				world.X, world.Y, m.Normal.X, m.Normal.Y, p.Penetration,
			)
		}
	}
	return out
}

// GetManifolds returns the self-describing stream (bodyA, bodyB, nx,
// ny, numPoints, then numPoints × [lAx, lAy, lBx, lBy, penetration])
// for the current contact cache.
func GetManifolds() []float64 {
	if current == nil {
		return nil
	}
	var out []float64
	for _, m := range current.sim.Manifolds() {
		out = append(out, encodeHandle(m.BodyA), encodeHandle(m.BodyB), m.Normal.X, m.Normal.Y, float64(len(m.Points)))
		for _, p := range m.Points {
			out = append(out, p.LocalAnchorA.X, p.LocalAnchorA.Y, p.LocalAnchorB.X, p.LocalAnchorB.Y, p.Penetration)
		}
	}
	return out
}
