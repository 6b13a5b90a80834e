package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jsvd/rigid2d/math2"
)

func TestWorldRemoveBodyCascadesToConstraints(t *testing.T) {
	w := NewWorld(DefaultSolverConfig())
	a := w.CreateBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)})
	b := w.CreateBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 3, Y: 0}})
	ct := w.CreateConstraint(NewDistanceJoint(a, b, 3, 0, 0))
	assert.NotZero(t, ct)

	assert.True(t, w.RemoveBody(a))
	assert.False(t, w.Constraints.Valid(ct))
}

func TestWorldCreateConstraintRejectsZeroHandle(t *testing.T) {
	w := NewWorld(DefaultSolverConfig())
	b := w.CreateBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)})
	ct := w.CreateConstraint(NewDistanceJoint(0, b, 1, 0, 0))
	assert.Zero(t, ct)
}

func TestWorldStepClampsRunawayDtAndResetsAccumulator(t *testing.T) {
	w := NewWorld(DefaultSolverConfig())
	w.CreateBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)})

	w.Step(1000) // far beyond MaxSubSteps*h; should not panic or stall
	assert.Zero(t, w.accumulator)
}

func TestWorldStepIgnoresNonPositiveDt(t *testing.T) {
	w := NewWorld(DefaultSolverConfig())
	id := w.CreateBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)})
	body, _ := w.Bodies.Get(id)
	before := body.Pose.Pos

	w.Step(0)
	w.Step(-1)

	assert.Equal(t, before, body.Pose.Pos)
}

func TestWorldRemoveBodyEvictsManifolds(t *testing.T) {
	w := NewWorld(DefaultSolverConfig())
	a := w.CreateBody(BodyDef{Kind: BodyStatic, Shape: NewAABBShape(10, 1)})
	b := w.CreateBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 0, Y: 1.5}})
	w.Step(1.0 / 60)
	_ = a

	w.RemoveBody(b)
	for _, m := range w.Manifolds() {
		assert.NotEqual(t, b, m.BodyA)
		assert.NotEqual(t, b, m.BodyB)
	}
}
