package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

func TestBuildIslandsDoesNotMergeThroughStaticBody(t *testing.T) {
	reg := handle.New[Body]()
	floor := reg.Create(NewBody(BodyDef{Kind: BodyStatic, Shape: NewAABBShape(10, 1)}))
	left := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: -5, Y: 1.5}}))
	right := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 5, Y: 1.5}}))

	manifolds := []*Manifold{
		{BodyA: floor, BodyB: left, Points: []ManifoldPoint{{}}},
		{BodyA: floor, BodyB: right, Points: []ManifoldPoint{{}}},
	}

	cts := handle.New[Constraint]()
	set := buildIslands(reg, manifolds, cts)
	assert.NotEqual(t, set.find(left), set.find(right))
}

func TestBuildIslandsMergesBodiesJoinedByManifold(t *testing.T) {
	reg := handle.New[Body]()
	a := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	b := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 1.5, Y: 0}}))

	manifolds := []*Manifold{{BodyA: a, BodyB: b, Points: []ManifoldPoint{{}}}}
	cts := handle.New[Constraint]()
	set := buildIslands(reg, manifolds, cts)
	assert.Equal(t, set.find(a), set.find(b))
}

func TestWakeConnectedIslandsWakesSleepingNeighbor(t *testing.T) {
	reg := handle.New[Body]()
	a := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	b := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1), Pos: math2.Vec2{X: 1.5, Y: 0}}))
	bodyB, _ := reg.Get(b)
	bodyB.Sleeping = true

	manifolds := []*Manifold{{BodyA: a, BodyB: b, Points: []ManifoldPoint{{}}}}
	cts := handle.New[Constraint]()
	set := buildIslands(reg, manifolds, cts)
	wakeConnectedIslands(set, reg)

	assert.False(t, bodyB.Sleeping)
}

func TestUpdateSleepPutsStillIslandToSleepAfterSleepTime(t *testing.T) {
	reg := handle.New[Body]()
	a := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	cts := handle.New[Constraint]()
	set := buildIslands(reg, nil, cts)

	cfg := DefaultSolverConfig()
	cfg.SleepTime = 0.1
	h := 1.0 / 60
	steps := int(cfg.SleepTime/h) + 2
	for i := 0; i < steps; i++ {
		updateSleep(reg, set, cfg, h)
	}

	bodyA, _ := reg.Get(a)
	assert.True(t, bodyA.Sleeping)
	assert.Zero(t, bodyA.LinVel.X)
	assert.Zero(t, bodyA.AngVel)
}

func TestUpdateSleepResetsIdleTimeWhenMoving(t *testing.T) {
	reg := handle.New[Body]()
	a := reg.Create(NewBody(BodyDef{Kind: BodyDynamic, Shape: NewCircleShape(1)}))
	bodyA, _ := reg.Get(a)
	bodyA.LinVel = math2.Vec2{X: 10, Y: 0}

	cts := handle.New[Constraint]()
	set := buildIslands(reg, nil, cts)
	cfg := DefaultSolverConfig()
	updateSleep(reg, set, cfg, 1.0/60)

	assert.Zero(t, bodyA.idleTime)
	assert.False(t, bodyA.Sleeping)
}
