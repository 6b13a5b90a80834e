package physics

import (
	"math"

	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

// defaultAccumulatorCap bounds how much wall-clock time a single Step
// call will absorb: a larger dt is clamped to this many seconds. Step
// separately runs at most MaxSubSteps sub-steps per call and drops any
// remainder once that cap is hit, preventing the spiral-of-death where
// a slow frame produces more sub-steps than the next frame has time
// to run.
const defaultAccumulatorCap = 0.25 // seconds

// World is the internal simulation orchestrator: it owns the body and
// constraint registries, the broad phase, the contact cache, and the
// fixed-sub-step solver. The root façade package wraps one World per
// handle-visible "world" and translates the flat numeric API onto it.
type World struct {
	Bodies      *handle.Registry[Body]
	Constraints *handle.Registry[Constraint]

	bp     *BroadPhase
	cache  *ContactCache
	solver *Solver
	cfg    SolverConfig

	accumulator float64
}

// NewWorld constructs an empty world with the given configuration.
func NewWorld(cfg SolverConfig) *World {
	bp := NewBroadPhase()
	cache := NewContactCache()
	return &World{
		Bodies:      handle.New[Body](),
		Constraints: handle.New[Constraint](),
		bp:          bp,
		cache:       cache,
		solver:      NewSolver(cfg, bp, cache),
		cfg:         cfg,
	}
}

// SetGravity updates the world's gravity vector for subsequent steps.
func (w *World) SetGravity(g math2.Vec2) { w.cfg.Gravity = g; w.solver.cfg.Gravity = g }

// CreateBody stores def and returns its handle, which is never 0. This
// method applies no capacity ceiling; the façade's CreateBody does.
func (w *World) CreateBody(def BodyDef) handle.Handle {
	return w.Bodies.Create(NewBody(def))
}

// RemoveBody removes a body and every manifold and joint referencing
// it. Returns false if h did not identify a live body.
func (w *World) RemoveBody(h handle.Handle) bool {
	if !w.Bodies.Remove(h) {
		return false
	}
	w.cache.RemoveBody(h)
	var dead []handle.Handle
	w.Constraints.Each(func(ch handle.Handle, c *Constraint) {
		if c.A == h || c.B == h {
			dead = append(dead, ch)
		}
	})
	for _, ch := range dead {
		w.Constraints.Remove(ch)
	}
	return true
}

// CreateConstraint stores c and returns its handle, or 0 if either
// endpoint is the zero handle, which is silently dropped.
func (w *World) CreateConstraint(c Constraint) handle.Handle {
	if c.A == 0 || c.B == 0 {
		return 0
	}
	if !w.Bodies.Valid(c.A) || !w.Bodies.Valid(c.B) {
		return 0
	}
	if a, _ := w.Bodies.Get(c.A); a != nil {
		a.Wake()
	}
	if b, _ := w.Bodies.Get(c.B); b != nil {
		b.Wake()
	}
	return w.Constraints.Create(c)
}

// RemoveConstraint removes a joint. Returns false if h was not live.
func (w *World) RemoveConstraint(h handle.Handle) bool {
	return w.Constraints.Remove(h)
}

// Step advances the simulation by dt seconds of wall-clock time,
// running zero or more fixed-duration sub-steps. A non-finite or
// non-positive dt is a no-op.
func (w *World) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	if dt > defaultAccumulatorCap {
		dt = defaultAccumulatorCap
	}
	w.accumulator += dt

	h := 1.0 / w.cfg.SubStepHz
	steps := 0
	for w.accumulator >= h && steps < w.cfg.MaxSubSteps {
		w.solver.Step(w.Bodies, w.Constraints)
		w.accumulator -= h
		steps++
	}
	if steps == w.cfg.MaxSubSteps {
		// Dropped remainder: the next Step call starts fresh rather
		// than trying to catch up, per the sub-step cap's purpose.
		w.accumulator = 0
	}
}

// QueryAABB returns every body overlapping box.
func (w *World) QueryAABB(box math2.AABB) []handle.Handle {
	return QueryAABB(w.Bodies, box)
}

// Raycast casts a ray and returns the nearest hit, if any.
func (w *World) Raycast(origin, dir math2.Vec2, maxDistance float64) (RayHit, bool) {
	return Raycast(w.Bodies, origin, dir, maxDistance)
}

// Manifolds returns every live cached contact manifold.
func (w *World) Manifolds() []*Manifold {
	return GetManifolds(w.cache)
}
