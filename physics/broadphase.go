package physics

import (
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

// broadPhaseMargin fattens AABBs before the overlap test so that
// temporally coherent pairs are found one step early, which is what
// lets the contact cache warm-start.
const broadPhaseMargin = 0.05

// BodySource is the minimal view the broad phase needs over the live
// body registry.
type BodySource interface {
	Each(func(h handle.Handle, b *Body))
}

// BroadPhase finds every pair of world-space AABBs that overlap using
// an all-pairs sweep, testing AABB overlap and a layer/mask filter.
// False positives are fine; a missed true overlap is not.
type BroadPhase struct{}

// NewBroadPhase constructs a broad phase. It is stateless: static
// bodies get no special caching here, since the all-pairs sweep is
// already cheap enough for the engine's size class.
func NewBroadPhase() *BroadPhase { return &BroadPhase{} }

// Pairs returns every candidate pair whose AABBs overlap and whose
// filters permit collision, skipping pairs where neither side is
// broad-phase active (see Body.broadPhaseActive): two static bodies,
// a sleeping dynamic body resting against a static body, or two
// sleeping dynamic bodies all produce no pair. This is what lets a
// dynamic body settle against static ground and actually accumulate
// sleep time instead of having its contact regenerated (and itself
// rewoken) every sub-step.
func (bp *BroadPhase) Pairs(bodies BodySource) []PairKey {
	type entry struct {
		id   handle.Handle
		b    *Body
		aabb math2.AABB
	}
	var list []entry
	bodies.Each(func(h handle.Handle, b *Body) {
		list = append(list, entry{id: h, b: b, aabb: b.WorldAABB(broadPhaseMargin)})
	})

	var pairs []PairKey
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			a, b := list[i], list[j]
			if !a.b.broadPhaseActive() && !b.b.broadPhaseActive() {
				continue
			}
			if !a.aabb.Overlaps(b.aabb) {
				continue
			}
			if !Collides(a.b.Filter, b.b.Filter) {
				continue
			}
			pairs = append(pairs, canonicalPair(a.id, b.id))
		}
	}
	return pairs
}
