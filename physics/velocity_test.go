package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

func twoBoxReg(gap float64) (*handle.Registry[Body], handle.Handle, handle.Handle) {
	reg := handle.New[Body]()
	idA := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewAABBShape(1, 1), Pos: math2.Vec2{X: 0, Y: 0}}))
	idB := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewAABBShape(1, 1), Pos: math2.Vec2{X: 2 - gap, Y: 0}}))
	return reg, idA, idB
}

func TestMixFrictionIsGeometricMean(t *testing.T) {
	a := Material{Friction: 4, Restitution: 0}
	b := Material{Friction: 9, Restitution: 0}
	assert.InDelta(t, 6.0, mixFriction(a, b), 1e-9)
}

func TestMixRestitutionTakesLarger(t *testing.T) {
	a := Material{Restitution: 0.2}
	b := Material{Restitution: 0.8}
	assert.InDelta(t, 0.8, mixRestitution(a, b), 1e-9)
}

func TestSolveManifoldVelocityNeverProducesNegativeNormalImpulse(t *testing.T) {
	reg, idA, idB := twoBoxReg(0.1)
	a, _ := reg.Get(idA)
	b, _ := reg.Get(idB)
	a.LinVel = math2.Vec2{X: 1, Y: 0}
	b.LinVel = math2.Vec2{X: -1, Y: 0}

	m := GenerateManifold(idA, a, idB, b)
	if !assert.NotNil(t, m) {
		return
	}
	prepareManifold(m, reg)
	for i := 0; i < 8; i++ {
		solveManifoldVelocity(m, reg, 1.0/60)
	}
	for _, p := range m.Points {
		assert.GreaterOrEqual(t, p.NormalImpulse, 0.0)
	}
}

func TestSolveManifoldVelocityClampsFrictionToCoulombCone(t *testing.T) {
	reg, idA, idB := twoBoxReg(0.1)
	a, _ := reg.Get(idA)
	b, _ := reg.Get(idB)
	a.Material.Friction = 0.3
	b.Material.Friction = 0.3
	a.LinVel = math2.Vec2{X: 0, Y: 5}
	b.LinVel = math2.Vec2{X: 0, Y: -5}

	m := GenerateManifold(idA, a, idB, b)
	if !assert.NotNil(t, m) {
		return
	}
	prepareManifold(m, reg)
	mu := mixFriction(a.Material, b.Material)
	for i := 0; i < 8; i++ {
		solveManifoldVelocity(m, reg, 1.0/60)
	}
	for _, p := range m.Points {
		assert.LessOrEqual(t, p.TangentImpulse, mu*p.NormalImpulse+1e-9)
		assert.GreaterOrEqual(t, p.TangentImpulse, -mu*p.NormalImpulse-1e-9)
	}
}

func TestSolveConstraintVelocityDistanceJointPullsBodiesTogether(t *testing.T) {
	reg := handle.New[Body]()
	idA := reg.Create(NewBody(BodyDef{Kind: BodyStatic, Shape: NewCircleShape(1)}))
	idB := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 5, Y: 0}}))
	// A rigid (0 Hz) joint has no velocity bias: its position error is
	// removed by solveConstraintPosition. A soft joint's bias term is what
	// pulls the bodies together at the velocity level.
	ct := NewDistanceJoint(idA, idB, 2.0, 4.0, 0.7)

	for i := 0; i < 20; i++ {
		solveConstraintVelocity(&ct, reg, 1.0/60)
	}
	b, _ := reg.Get(idB)
	assert.Less(t, b.LinVel.X, 0.0)
}
