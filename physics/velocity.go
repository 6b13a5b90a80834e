package physics

import (
	"math"

	"github.com/jsvd/rigid2d/math2"
)

// restitutionThreshold is the minimum closing speed a contact needs
// before restitution kicks in, which keeps resting contacts from
// jittering from numerical bounce.
const restitutionThreshold = 1.0

// mixRestitution and mixFriction follow the common convention:
// restitution takes the larger of the two materials, friction the
// geometric mean.
func mixRestitution(a, b Material) float64 {
	if a.Restitution > b.Restitution {
		return a.Restitution
	}
	return b.Restitution
}

func mixFriction(a, b Material) float64 {
	return math.Sqrt(a.Friction * b.Friction)
}

func pointVelocity(b *Body, r math2.Vec2) math2.Vec2 {
	return b.LinVel.Add(r.CrossScalar(b.AngVel))
}

// prepareManifold computes, for each contact point, the effective
// normal/tangent mass and the restitution velocity bias, using the
// velocity state after force integration but before any contact
// response, exactly once per step, before warm-starting.
func prepareManifold(m *Manifold, b bodies) {
	a, bb, ok := bodyPair(b, PairKey{A: m.BodyA, B: m.BodyB})
	if !ok {
		return
	}
	normal := m.Normal
	tangent := normal.Perp()
	restitution := mixRestitution(a.Material, bb.Material)
	m.localNormal = a.Pose.Rot.InvRotate(normal)

	for i := range m.Points {
		p := &m.Points[i]
		rA := a.Pose.Apply(p.LocalAnchorA).Sub(a.Pose.Pos)
		rB := bb.Pose.Apply(p.LocalAnchorB).Sub(bb.Pose.Pos)

		rnA := rA.Cross(normal)
		rnB := rB.Cross(normal)
		kNormal := a.InvMass + bb.InvMass + a.InvI*rnA*rnA + bb.InvI*rnB*rnB
		if kNormal > 0 {
			p.normalMass = 1 / kNormal
		}

		rtA := rA.Cross(tangent)
		rtB := rB.Cross(tangent)
		kTangent := a.InvMass + bb.InvMass + a.InvI*rtA*rtA + bb.InvI*rtB*rtB
		if kTangent > 0 {
			p.tangentMass = 1 / kTangent
		}

		relVel := pointVelocity(bb, rB).Sub(pointVelocity(a, rA))
		vn := relVel.Dot(normal)
		p.velocityBias = 0
		if vn <= -restitutionThreshold {
			p.velocityBias = -restitution * vn
		}
	}
}

// solveManifoldVelocity runs one Sequential-Impulses pass over every
// point in m: normal impulse first (clamped to >=0, accumulated and
// re-clamped so warm starts never go negative), then friction
// (clamped to the Coulomb cone ±mu*normalImpulse).
func solveManifoldVelocity(m *Manifold, b bodies, h float64) {
	a, bb, ok := bodyPair(b, PairKey{A: m.BodyA, B: m.BodyB})
	if !ok {
		return
	}
	normal := m.Normal
	tangent := normal.Perp()
	friction := mixFriction(a.Material, bb.Material)

	for i := range m.Points {
		p := &m.Points[i]
		rA := a.Pose.Apply(p.LocalAnchorA).Sub(a.Pose.Pos)
		rB := bb.Pose.Apply(p.LocalAnchorB).Sub(bb.Pose.Pos)

		relVel := pointVelocity(bb, rB).Sub(pointVelocity(a, rA))
		vn := relVel.Dot(normal)
		lambda := p.normalMass * (-vn + p.velocityBias)

		newImpulse := p.NormalImpulse + lambda
		if newImpulse < 0 {
			newImpulse = 0
		}
		lambda = newImpulse - p.NormalImpulse
		p.NormalImpulse = newImpulse

		impulse := normal.Scale(lambda)
		a.ApplyImpulseAt(impulse.Neg(), a.Pose.Pos.Add(rA))
		bb.ApplyImpulseAt(impulse, bb.Pose.Pos.Add(rB))
	}

	for i := range m.Points {
		p := &m.Points[i]
		rA := a.Pose.Apply(p.LocalAnchorA).Sub(a.Pose.Pos)
		rB := bb.Pose.Apply(p.LocalAnchorB).Sub(bb.Pose.Pos)

		relVel := pointVelocity(bb, rB).Sub(pointVelocity(a, rA))
		vt := relVel.Dot(tangent)
		lambda := p.tangentMass * (-vt)

		maxFriction := friction * p.NormalImpulse
		newImpulse := p.TangentImpulse + lambda
		if newImpulse < -maxFriction {
			newImpulse = -maxFriction
		} else if newImpulse > maxFriction {
			newImpulse = maxFriction
		}
		lambda = newImpulse - p.TangentImpulse
		p.TangentImpulse = newImpulse

		impulse := tangent.Scale(lambda)
		a.ApplyImpulseAt(impulse.Neg(), a.Pose.Pos.Add(rA))
		bb.ApplyImpulseAt(impulse, bb.Pose.Pos.Add(rB))
	}
}

// solveConstraintVelocity resolves one joint's velocity-level
// constraint using warm-started Lagrange multipliers, softened by
// softParams for compliant joints.
func solveConstraintVelocity(ct *Constraint, b bodies, h float64) {
	a, bb, ok := bodyPair(b, PairKey{A: ct.A, B: ct.B})
	if !ok {
		return
	}
	biasRate, massScale, impulseScale := softParams(ct.FrequencyHz, ct.DampingRatio, h)

	if ct.IsRevolute() {
		rA := a.Pose.Rot.Rotate(ct.LocalAnchorA)
		rB := bb.Pose.Rot.Rotate(ct.LocalAnchorB)
		worldA := a.Pose.Pos.Add(rA)
		worldB := bb.Pose.Pos.Add(rB)
		c := worldB.Sub(worldA)

		// 2x2 effective mass for the point constraint.
		k11 := a.InvMass + bb.InvMass + a.InvI*rA.Y*rA.Y + bb.InvI*rB.Y*rB.Y
		k12 := -a.InvI*rA.X*rA.Y - bb.InvI*rB.X*rB.Y
		k22 := a.InvMass + bb.InvMass + a.InvI*rA.X*rA.X + bb.InvI*rB.X*rB.X

		relVel := pointVelocity(bb, rB).Sub(pointVelocity(a, rA))
		bias := c.Scale(biasRate)
		rhs := relVel.Add(bias).Neg()

		det := k11*k22 - k12*k12
		var dx, dy float64
		if det != 0 {
			inv := 1 / det
			dx = inv * (k22*rhs.X - k12*rhs.Y)
			dy = inv * (k11*rhs.Y - k12*rhs.X)
		}
		dx = massScale*dx - impulseScale*ct.lambda[0]
		dy = massScale*dy - impulseScale*ct.lambda[1]
		ct.lambda[0] += dx
		ct.lambda[1] += dy

		impulse := math2.Vec2{X: dx, Y: dy}
		a.ApplyImpulseAt(impulse.Neg(), worldA)
		bb.ApplyImpulseAt(impulse, worldB)
		return
	}

	// Distance joint: anchors are the body origins.
	delta := bb.Pose.Pos.Sub(a.Pose.Pos)
	dist := delta.Len()
	if dist < math2.Epsilon {
		return
	}
	axis := delta.Scale(1 / dist)
	c := dist - ct.RestLength

	rA := math2.Vec2{}
	rB := math2.Vec2{}
	rnA := rA.Cross(axis)
	rnB := rB.Cross(axis)
	k := a.InvMass + bb.InvMass + a.InvI*rnA*rnA + bb.InvI*rnB*rnB
	if k <= 0 {
		return
	}

	relVel := pointVelocity(bb, rB).Sub(pointVelocity(a, rA))
	vn := relVel.Dot(axis)
	bias := biasRate * c

	lambda := -(vn + bias) / k
	lambda = massScale*lambda - impulseScale*ct.lambda[0]
	ct.lambda[0] += lambda

	impulse := axis.Scale(lambda)
	a.ApplyImpulseAt(impulse.Neg(), a.Pose.Pos)
	bb.ApplyImpulseAt(impulse, bb.Pose.Pos)
}
