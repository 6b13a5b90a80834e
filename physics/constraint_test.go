package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

func TestNewDistanceJointZeroFreqIsRigid(t *testing.T) {
	c := NewDistanceJoint(1, 2, 5.0, 0, 0)
	assert.Equal(t, RigidDistance, c.Kind)
	assert.False(t, c.IsSoft())
}

func TestNewDistanceJointPositiveFreqIsSoft(t *testing.T) {
	c := NewDistanceJoint(1, 2, 5.0, 4.0, 0.7)
	assert.Equal(t, SoftDistance, c.Kind)
	assert.True(t, c.IsSoft())
}

func TestNewRevoluteJointConvertsPivotToLocalAnchors(t *testing.T) {
	a := NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: -2, Y: 0}})
	b := NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 2, Y: 0}})
	pivot := math2.Vec2{X: 0, Y: 0}

	c := NewRevoluteJoint(handle.Handle(1), &a, handle.Handle(2), &b, pivot, 0, 0)
	assert.Equal(t, RigidRevolute, c.Kind)
	assert.True(t, c.IsRevolute())
	assert.InDelta(t, 2.0, c.LocalAnchorA.X, 1e-9)
	assert.InDelta(t, -2.0, c.LocalAnchorB.X, 1e-9)
}

func TestSoftParamsRigidPassthroughAtZeroFrequency(t *testing.T) {
	biasRate, massScale, impulseScale := softParams(0, 1, 1.0/60)
	assert.Zero(t, biasRate)
	assert.InDelta(t, 1.0, massScale, 1e-9)
	assert.Zero(t, impulseScale)
}

func TestSoftParamsSoftensAtPositiveFrequency(t *testing.T) {
	biasRate, massScale, impulseScale := softParams(4.0, 1.0, 1.0/60)
	assert.Greater(t, biasRate, 0.0)
	assert.Less(t, massScale, 1.0)
	assert.Greater(t, impulseScale, 0.0)
}
