package physics

import "github.com/jsvd/rigid2d/math2"

// solveManifoldPosition runs one Nonlinear-Gauss-Seidel position
// correction pass over m: the world normal and anchors are re-derived
// from the bodies' current poses (rather than re-running narrow
// phase), and each point is pushed apart directly along the normal,
// never by more than maxCorrection and leaving linearSlop of
// allowed interpenetration.
func solveManifoldPosition(m *Manifold, b bodies, linearSlop, maxCorrection float64) {
	a, bb, ok := bodyPair(b, PairKey{A: m.BodyA, B: m.BodyB})
	if !ok {
		return
	}
	normal := a.Pose.Rot.Rotate(m.localNormal)

	for i := range m.Points {
		p := &m.Points[i]
		rA := a.Pose.Apply(p.LocalAnchorA).Sub(a.Pose.Pos)
		rB := bb.Pose.Apply(p.LocalAnchorB).Sub(bb.Pose.Pos)
		worldA := a.Pose.Pos.Add(rA)
		worldB := bb.Pose.Pos.Add(rB)

		separation := worldB.Sub(worldA).Dot(normal) - p.Penetration
		c := clampFloat(separation+linearSlop, -maxCorrection, 0)
		if c >= 0 {
			continue
		}

		rnA := rA.Cross(normal)
		rnB := rB.Cross(normal)
		k := a.InvMass + bb.InvMass + a.InvI*rnA*rnA + bb.InvI*rnB*rnB
		if k <= 0 {
			continue
		}
		lambda := -c / k
		correction := normal.Scale(lambda)

		a.Pose.Pos = a.Pose.Pos.Sub(correction.Scale(a.InvMass))
		a.Pose.Rot = a.Pose.Rot.Integrate(-a.InvI*rA.Cross(correction), 1)
		bb.Pose.Pos = bb.Pose.Pos.Add(correction.Scale(bb.InvMass))
		bb.Pose.Rot = bb.Pose.Rot.Integrate(bb.InvI*rB.Cross(correction), 1)
	}
}

// solveConstraintPosition applies an NGS correction to a rigid joint
// so accumulated drift (from linearization error in the velocity
// solve) does not grow step over step.
func solveConstraintPosition(ct *Constraint, b bodies, maxCorrection float64) {
	a, bb, ok := bodyPair(b, PairKey{A: ct.A, B: ct.B})
	if !ok {
		return
	}

	if ct.IsRevolute() {
		rA := a.Pose.Rot.Rotate(ct.LocalAnchorA)
		rB := bb.Pose.Rot.Rotate(ct.LocalAnchorB)
		worldA := a.Pose.Pos.Add(rA)
		worldB := bb.Pose.Pos.Add(rB)
		c := worldB.Sub(worldA)
		if c.LenSq() < math2.Epsilon*math2.Epsilon {
			return
		}

		k11 := a.InvMass + bb.InvMass + a.InvI*rA.Y*rA.Y + bb.InvI*rB.Y*rB.Y
		k12 := -a.InvI*rA.X*rA.Y - bb.InvI*rB.X*rB.Y
		k22 := a.InvMass + bb.InvMass + a.InvI*rA.X*rA.X + bb.InvI*rB.X*rB.X
		det := k11*k22 - k12*k12
		if det == 0 {
			return
		}
		inv := 1 / det
		dx := -inv * (k22*c.X - k12*c.Y)
		dy := -inv * (k11*c.Y - k12*c.X)
		correction := clampVec(math2.Vec2{X: dx, Y: dy}, maxCorrection)

		a.Pose.Pos = a.Pose.Pos.Sub(correction.Scale(a.InvMass))
		a.Pose.Rot = a.Pose.Rot.Integrate(-a.InvI*rA.Cross(correction), 1)
		bb.Pose.Pos = bb.Pose.Pos.Add(correction.Scale(bb.InvMass))
		bb.Pose.Rot = bb.Pose.Rot.Integrate(bb.InvI*rB.Cross(correction), 1)
		return
	}

	delta := bb.Pose.Pos.Sub(a.Pose.Pos)
	dist := delta.Len()
	if dist < math2.Epsilon {
		return
	}
	axis := delta.Scale(1 / dist)
	c := dist - ct.RestLength
	if c == 0 {
		return
	}

	k := a.InvMass + bb.InvMass
	if k <= 0 {
		return
	}
	lambda := clampFloat(-c/k, -maxCorrection, maxCorrection)
	correction := axis.Scale(lambda)

	a.Pose.Pos = a.Pose.Pos.Sub(correction.Scale(a.InvMass))
	bb.Pose.Pos = bb.Pose.Pos.Add(correction.Scale(bb.InvMass))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampVec(v math2.Vec2, maxLen float64) math2.Vec2 {
	l := v.Len()
	if l <= maxLen || l == 0 {
		return v
	}
	return v.Scale(maxLen / l)
}
