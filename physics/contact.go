package physics

import (
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

// PairKey canonically identifies an unordered body pair with A<B, so
// the host sees a stable contact key regardless of insertion order.
type PairKey struct {
	A, B handle.Handle
}

func canonicalPair(a, b handle.Handle) PairKey {
	if a < b {
		return PairKey{A: a, B: b}
	}
	return PairKey{A: b, B: a}
}

// ManifoldPoint is one contact point, carrying its body-local anchors
// (so it survives both bodies moving) and the warm-start impulse
// accumulators carried over from the previous step.
type ManifoldPoint struct {
	LocalAnchorA, LocalAnchorB math2.Vec2
	Penetration                float64

	NormalImpulse  float64
	TangentImpulse float64

	// Solver-only scratch, recomputed every step and never warm-started.
	normalMass    float64
	tangentMass   float64
	velocityBias  float64
}

// anchorMatchTolerance bounds how far a cached anchor may have drifted
// for a fresh point to still be considered "the same" contact for
// warm-starting.
const anchorMatchTolerance = 0.02 * 0.02 // squared distance

// Manifold is the narrow phase's output for one overlapping pair: a
// shared normal (pointing from A to B) and 1-2 contact points.
type Manifold struct {
	BodyA, BodyB handle.Handle
	Normal       math2.Vec2
	Points       []ManifoldPoint

	// localNormal is Normal expressed in body A's frame at the moment
	// of generation, used by the position solver to re-derive the
	// world normal as A rotates across sub-steps without re-running
	// narrow phase every position iteration.
	localNormal math2.Vec2
}

// mergeWarmStart copies accumulated impulses from cached into fresh
// wherever a fresh point's anchors are close enough to a cached one.
// Points in cached with no match are discarded (their impulse memory
// is simply not carried forward).
func mergeWarmStart(fresh, cached *Manifold) {
	if cached == nil {
		return
	}
	for i := range fresh.Points {
		fp := &fresh.Points[i]
		for _, cp := range cached.Points {
			if fp.LocalAnchorA.DistSq(cp.LocalAnchorA) < anchorMatchTolerance {
				fp.NormalImpulse = cp.NormalImpulse
				fp.TangentImpulse = cp.TangentImpulse
				break
			}
		}
	}
}

// ContactCache is the manifold store keyed by canonical pair. It is
// pruned every step: any pair not touched by narrow phase during that
// step is evicted, freeing its impulse memory.
type ContactCache struct {
	entries map[PairKey]*Manifold
}

// NewContactCache creates an empty cache.
func NewContactCache() *ContactCache {
	return &ContactCache{entries: map[PairKey]*Manifold{}}
}

// Put installs (or replaces, after warm-start merge) the manifold for key.
func (c *ContactCache) Put(key PairKey, m *Manifold) {
	c.entries[key] = m
}

// Get returns the cached manifold for key, if any.
func (c *ContactCache) Get(key PairKey) (*Manifold, bool) {
	m, ok := c.entries[key]
	return m, ok
}

// Prune removes every entry whose key is not present in touched.
func (c *ContactCache) Prune(touched map[PairKey]bool) {
	for key := range c.entries {
		if !touched[key] {
			delete(c.entries, key)
		}
	}
}

// RemoveBody evicts every manifold referencing id, used when a body is removed.
func (c *ContactCache) RemoveBody(id handle.Handle) {
	for key := range c.entries {
		if key.A == id || key.B == id {
			delete(c.entries, key)
		}
	}
}

// Each calls f for every cached manifold.
func (c *ContactCache) Each(f func(PairKey, *Manifold)) {
	for key, m := range c.entries {
		f(key, m)
	}
}

// Len returns the number of cached manifolds.
func (c *ContactCache) Len() int { return len(c.entries) }
