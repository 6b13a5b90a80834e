package physics

import "github.com/jsvd/rigid2d/handle"

// island assembly groups awake non-static bodies connected by a live
// contact manifold or joint into a union-find forest. Static bodies
// are never merged into an island: they are shared boundaries, not
// island members, so a single static floor does not weld every body
// resting on it into one island.
type islandSet struct {
	parent map[handle.Handle]handle.Handle
}

func newIslandSet() *islandSet {
	return &islandSet{parent: map[handle.Handle]handle.Handle{}}
}

func (s *islandSet) find(h handle.Handle) handle.Handle {
	root, ok := s.parent[h]
	if !ok {
		s.parent[h] = h
		return h
	}
	if root == h {
		return h
	}
	root = s.find(root)
	s.parent[h] = root
	return root
}

func (s *islandSet) union(a, b handle.Handle) {
	ra, rb := s.find(a), s.find(b)
	if ra != rb {
		s.parent[ra] = rb
	}
}

// buildIslands unions every pair of non-static bodies joined by a
// manifold or constraint this step, returning the set for use by
// wake propagation and sleep decisions.
func buildIslands(b bodies, manifolds []*Manifold, c constraints) *islandSet {
	set := newIslandSet()
	link := func(ha, hb handle.Handle) {
		ba, okA := b.Get(ha)
		bb, okB := b.Get(hb)
		if !okA || !okB {
			return
		}
		if ba.Kind == BodyStatic || bb.Kind == BodyStatic {
			return
		}
		set.find(ha)
		set.find(hb)
		set.union(ha, hb)
	}
	for _, m := range manifolds {
		link(m.BodyA, m.BodyB)
	}
	c.Each(func(_ handle.Handle, ct *Constraint) {
		link(ct.A, ct.B)
	})
	b.Each(func(h handle.Handle, body *Body) {
		if body.Kind != BodyStatic {
			set.find(h)
		}
	})
	return set
}

// wakeConnectedIslands ensures that if any body in an island is awake,
// every body in that island is woken: a sleeping body resting in the
// same island as a moving one must not lag behind.
func wakeConnectedIslands(set *islandSet, b bodies) {
	anyAwake := map[handle.Handle]bool{}
	b.Each(func(h handle.Handle, body *Body) {
		if body.Kind == BodyStatic {
			return
		}
		if !body.Sleeping {
			anyAwake[set.find(h)] = true
		}
	})
	b.Each(func(h handle.Handle, body *Body) {
		if body.Kind == BodyStatic || !body.Sleeping {
			return
		}
		if anyAwake[set.find(h)] {
			body.Wake()
		}
	})
}

// updateSleep advances each body's idle timer and puts whole islands
// to sleep together once every member has been below the velocity
// thresholds for cfg.SleepTime. A body with any force/impulse applied
// this step was already woken by that call, so it is exempt here.
func updateSleep(b bodies, set *islandSet, cfg SolverConfig, h float64) {
	linTolSq := cfg.SleepLinearTol * cfg.SleepLinearTol
	angTolSq := cfg.SleepAngularTol * cfg.SleepAngularTol

	islandStill := map[handle.Handle]bool{}
	islandSeen := map[handle.Handle]bool{}

	b.Each(func(hid handle.Handle, body *Body) {
		if body.Kind != BodyDynamic || body.Sleeping {
			return
		}
		root := set.find(hid)
		islandSeen[root] = true
		still := body.speedSq() < linTolSq && body.AngVel*body.AngVel < angTolSq
		if !still {
			islandStill[root] = false
		} else if _, ok := islandStill[root]; !ok {
			islandStill[root] = true
		}
	})

	minIdle := map[handle.Handle]float64{}
	b.Each(func(hid handle.Handle, body *Body) {
		if body.Kind != BodyDynamic || body.Sleeping {
			return
		}
		root := set.find(hid)
		if islandStill[root] {
			body.idleTime += h
		} else {
			body.idleTime = 0
		}
		cur, ok := minIdle[root]
		if !ok || body.idleTime < cur {
			minIdle[root] = body.idleTime
		}
	})

	b.Each(func(hid handle.Handle, body *Body) {
		if body.Kind != BodyDynamic || body.Sleeping {
			return
		}
		root := set.find(hid)
		if islandStill[root] && minIdle[root] >= cfg.SleepTime {
			body.Sleeping = true
			body.LinVel = body.LinVel.Scale(0)
			body.AngVel = 0
		}
	})
}
