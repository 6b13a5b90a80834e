package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

func TestCanonicalPairOrdersByHandle(t *testing.T) {
	a, b := handle.Handle(5), handle.Handle(9)
	assert.Equal(t, PairKey{A: a, B: b}, canonicalPair(a, b))
	assert.Equal(t, PairKey{A: a, B: b}, canonicalPair(b, a))
}

func TestMergeWarmStartCopiesMatchingAnchor(t *testing.T) {
	cached := &Manifold{Points: []ManifoldPoint{
		{LocalAnchorA: math2.Vec2{X: 1, Y: 0}, NormalImpulse: 3, TangentImpulse: 1},
	}}
	fresh := &Manifold{Points: []ManifoldPoint{
		{LocalAnchorA: math2.Vec2{X: 1.001, Y: 0}},
	}}
	mergeWarmStart(fresh, cached)
	assert.InDelta(t, 3, fresh.Points[0].NormalImpulse, 1e-9)
	assert.InDelta(t, 1, fresh.Points[0].TangentImpulse, 1e-9)
}

func TestMergeWarmStartSkipsUnmatchedAnchors(t *testing.T) {
	cached := &Manifold{Points: []ManifoldPoint{
		{LocalAnchorA: math2.Vec2{X: 5, Y: 5}, NormalImpulse: 3},
	}}
	fresh := &Manifold{Points: []ManifoldPoint{
		{LocalAnchorA: math2.Vec2{X: -5, Y: -5}},
	}}
	mergeWarmStart(fresh, cached)
	assert.Zero(t, fresh.Points[0].NormalImpulse)
}

func TestMergeWarmStartNilCachedIsNoOp(t *testing.T) {
	fresh := &Manifold{Points: []ManifoldPoint{{NormalImpulse: 0}}}
	assert.NotPanics(t, func() { mergeWarmStart(fresh, nil) })
}

func TestContactCachePruneRemovesUntouchedEntries(t *testing.T) {
	c := NewContactCache()
	keyA := PairKey{A: 1, B: 2}
	keyB := PairKey{A: 1, B: 3}
	c.Put(keyA, &Manifold{})
	c.Put(keyB, &Manifold{})
	c.Prune(map[PairKey]bool{keyA: true})

	_, okA := c.Get(keyA)
	_, okB := c.Get(keyB)
	assert.True(t, okA)
	assert.False(t, okB)
}

func TestContactCacheRemoveBodyEvictsAllOfItsPairs(t *testing.T) {
	c := NewContactCache()
	c.Put(PairKey{A: 1, B: 2}, &Manifold{})
	c.Put(PairKey{A: 2, B: 3}, &Manifold{})
	c.Put(PairKey{A: 4, B: 5}, &Manifold{})
	c.RemoveBody(2)
	assert.Equal(t, 1, c.Len())
}
