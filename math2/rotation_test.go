package math2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotationIdentity(t *testing.T) {
	v := Vec2{3, 4}
	assert.Equal(t, v, IdentityRotation.Rotate(v))
}

func TestRotationRoundTrip(t *testing.T) {
	r := NewRotation(math.Pi / 3)
	v := Vec2{5, -2}
	rotated := r.Rotate(v)
	back := r.InvRotate(rotated)
	assert.InDelta(t, v.X, back.X, 1e-9)
	assert.InDelta(t, v.Y, back.Y, 1e-9)
}

func TestRotationAngle(t *testing.T) {
	r := NewRotation(math.Pi / 4)
	assert.InDelta(t, math.Pi/4, r.Angle(), 1e-9)
}

func TestRotationQuarterTurn(t *testing.T) {
	r := NewRotation(math.Pi / 2)
	v := r.Rotate(Vec2{1, 0})
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 1, v.Y, 1e-9)
}

func TestRotationIntegrateStaysUnit(t *testing.T) {
	r := IdentityRotation
	for i := 0; i < 1000; i++ {
		r = r.Integrate(1.5, 1.0/60.0)
	}
	l := math.Sqrt(r.Sin*r.Sin + r.Cos*r.Cos)
	assert.InDelta(t, 1.0, l, 1e-9)
}

func TestTransformApplyRoundTrip(t *testing.T) {
	tr := Transform{Pos: Vec2{10, -5}, Rot: NewRotation(1.2)}
	local := Vec2{2, 3}
	world := tr.Apply(local)
	back := tr.ApplyInv(world)
	assert.InDelta(t, local.X, back.X, 1e-9)
	assert.InDelta(t, local.Y, back.Y, 1e-9)
}
