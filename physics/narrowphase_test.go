package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

func circleBody(x, y, r float64) *Body {
	b := NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(r), Pos: math2.Vec2{X: x, Y: y}})
	return &b
}

func boxBody(x, y, hw, hh float64) *Body {
	b := NewBody(BodyDef{Kind: BodyDynamic, Shape: NewAABBShape(hw, hh), Pos: math2.Vec2{X: x, Y: y}})
	return &b
}

func TestCircleCircleManifold(t *testing.T) {
	a := circleBody(0, 0, 1)
	b := circleBody(1.5, 0, 1)
	m := GenerateManifold(1, a, 2, b)
	if assert.NotNil(t, m) {
		assert.InDelta(t, 0.5, m.Points[0].Penetration, 1e-9)
		assert.InDelta(t, 1.0, m.Normal.X, 1e-9)
	}
}

func TestCircleCircleNoOverlapReturnsNil(t *testing.T) {
	a := circleBody(0, 0, 1)
	b := circleBody(5, 0, 1)
	assert.Nil(t, GenerateManifold(1, a, 2, b))
}

func TestCirclePolygonNormalPointsAtoB(t *testing.T) {
	circle := circleBody(0, 0, 1)
	box := boxBody(1.8, 0, 1, 1)
	m := GenerateManifold(1, circle, 2, box)
	if assert.NotNil(t, m) {
		assert.Equal(t, handle.Handle(1), m.BodyA)
		assert.Greater(t, m.Normal.X, 0.0)
	}
}

func TestBoxBoxManifoldHasTwoPoints(t *testing.T) {
	a := boxBody(0, 0, 1, 1)
	b := boxBody(1.9, 0, 1, 1)
	m := GenerateManifold(1, a, 2, b)
	if assert.NotNil(t, m) {
		assert.Len(t, m.Points, 2)
		assert.InDelta(t, 1.0, m.Normal.X, 1e-9)
	}
}

func TestBoxBoxSeparatedReturnsNil(t *testing.T) {
	a := boxBody(0, 0, 1, 1)
	b := boxBody(5, 0, 1, 1)
	assert.Nil(t, GenerateManifold(1, a, 2, b))
}
