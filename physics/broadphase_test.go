package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

func TestBroadPhaseSkipsTwoStaticBodies(t *testing.T) {
	reg := handle.New[Body]()
	reg.Create(NewBody(BodyDef{Kind: BodyStatic, Shape: NewCircleShape(1), Pos: math2.Vec2{}}))
	reg.Create(NewBody(BodyDef{Kind: BodyStatic, Shape: NewCircleShape(1), Pos: math2.Vec2{}}))

	bp := NewBroadPhase()
	assert.Empty(t, bp.Pairs(reg))
}

func TestBroadPhaseReportsOverlappingDynamicPair(t *testing.T) {
	reg := handle.New[Body]()
	reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 0, Y: 0}}))
	reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 1, Y: 0}}))

	bp := NewBroadPhase()
	assert.Len(t, bp.Pairs(reg), 1)
}

func TestBroadPhaseFiltersNonCollidingLayers(t *testing.T) {
	reg := handle.New[Body]()
	reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Filter: Filter{Layer: 0x1, Mask: 0x2}}))
	reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Filter: Filter{Layer: 0x4, Mask: 0xFF}}))

	bp := NewBroadPhase()
	assert.Empty(t, bp.Pairs(reg))
}

func TestBroadPhaseSkipsTwoSleepingBodies(t *testing.T) {
	reg := handle.New[Body]()
	id1 := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	id2 := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	b1, _ := reg.Get(id1)
	b2, _ := reg.Get(id2)
	b1.Sleeping = true
	b2.Sleeping = true

	bp := NewBroadPhase()
	assert.Empty(t, bp.Pairs(reg))
}

func TestBroadPhaseSkipsSleepingDynamicRestingOnStatic(t *testing.T) {
	reg := handle.New[Body]()
	reg.Create(NewBody(BodyDef{Kind: BodyStatic, Shape: NewAABBShape(50, 1), Pos: math2.Vec2{X: 0, Y: 10}}))
	id := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewAABBShape(0.5, 0.5), Pos: math2.Vec2{X: 0, Y: 9.0}}))
	body, _ := reg.Get(id)
	body.Sleeping = true

	bp := NewBroadPhase()
	assert.Empty(t, bp.Pairs(reg), "a sleeping dynamic body resting on static ground must not regenerate a contact")
}

func TestBroadPhaseKeepsSleepingDynamicVsAwakeDynamicPair(t *testing.T) {
	reg := handle.New[Body]()
	id1 := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 1, Y: 0}}))
	b1, _ := reg.Get(id1)
	b1.Sleeping = true

	bp := NewBroadPhase()
	assert.Len(t, bp.Pairs(reg), 1, "an awake body approaching a sleeping one must still be detected so it can wake it")
}

func TestBroadPhaseKeepsSleepingDynamicVsKinematicPair(t *testing.T) {
	reg := handle.New[Body]()
	id := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	reg.Create(NewBody(BodyDef{Kind: BodyKinematic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 1, Y: 0}}))
	body, _ := reg.Get(id)
	body.Sleeping = true

	bp := NewBroadPhase()
	assert.Len(t, bp.Pairs(reg), 1, "a moving kinematic platform must still be able to find and wake a sleeping body")
}
