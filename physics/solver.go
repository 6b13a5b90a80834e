package physics

import (
	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

// SolverConfig collects the tunables the sub-step pipeline reads every
// step. Zero-valued fields are invalid; use DefaultSolverConfig.
type SolverConfig struct {
	Gravity math2.Vec2

	SubStepHz     float64 // sub-steps run at a fixed rate; default 60Hz
	MaxSubSteps   int     // accumulator cap, default 8 (spiral-of-death guard)
	VelocityIters int     // default 8
	PositionIters int     // default 3

	LinearSlop    float64 // default 0.005
	MaxCorrection float64 // max positional correction per iteration, default 0.2

	SleepLinearTol float64 // default 0.01 (velocity squared threshold uses this^2)
	SleepAngularTol float64 // default 0.01
	SleepTime      float64 // default 0.5s of stillness before sleeping
}

// DefaultSolverConfig matches the façade's documented defaults.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Gravity:         math2.Vec2{X: 0, Y: -9.8},
		SubStepHz:       60,
		MaxSubSteps:     8,
		VelocityIters:   8,
		PositionIters:   3,
		LinearSlop:      0.005,
		MaxCorrection:   0.2,
		SleepLinearTol:  0.01,
		SleepAngularTol: 0.01,
		SleepTime:       0.5,
	}
}

// bodies is the minimal registry view the solver needs; *handle.Registry[Body]
// satisfies it structurally.
type bodies interface {
	BodySource
	Get(handle.Handle) (*Body, bool)
}

type constraints interface {
	Each(func(handle.Handle, *Constraint))
}

// Solver runs the fixed sub-step pipeline: integrate forces, refresh
// broad/narrow phase, assemble islands, run velocity iterations,
// integrate positions, run position iterations, then update sleep
// state. A
// Sequential-Impulse loop generalized to 2D and to the joint set in
// constraint.go.
type Solver struct {
	cfg   SolverConfig
	bp    *BroadPhase
	cache *ContactCache

	touched map[PairKey]bool
}

// NewSolver builds a Solver around an existing broad phase and contact
// cache so the world can own and inspect them between steps.
func NewSolver(cfg SolverConfig, bp *BroadPhase, cache *ContactCache) *Solver {
	return &Solver{cfg: cfg, bp: bp, cache: cache, touched: map[PairKey]bool{}}
}

// Step advances the simulation by exactly one fixed sub-step of
// duration h. Callers accumulate wall-clock dt and call Step in a
// loop.
func (s *Solver) Step(b bodies, c constraints) {
	h := 1.0 / s.cfg.SubStepHz

	b.Each(func(_ handle.Handle, body *Body) {
		body.integrateForces(h, s.cfg.Gravity)
		body.clearForces()
	})

	pairs := s.bp.Pairs(b)
	for k := range s.touched {
		delete(s.touched, k)
	}

	var manifolds []*Manifold
	for _, pk := range pairs {
		bodyA, okA := b.Get(pk.A)
		bodyB, okB := b.Get(pk.B)
		if !okA || !okB {
			continue
		}
		m := GenerateManifold(pk.A, bodyA, pk.B, bodyB)
		if m == nil {
			continue
		}
		if cached, ok := s.cache.Get(pk); ok {
			mergeWarmStart(m, cached)
		}
		s.cache.Put(pk, m)
		s.touched[pk] = true
		manifolds = append(manifolds, m)
	}
	s.cache.Prune(s.touched)

	islands := buildIslands(b, manifolds, c)
	wakeConnectedIslands(islands, b)

	var cts []*Constraint
	c.Each(func(_ handle.Handle, ct *Constraint) { cts = append(cts, ct) })

	for _, m := range manifolds {
		prepareManifold(m, b)
		warmStartManifold(m, b)
	}

	for iter := 0; iter < s.cfg.VelocityIters; iter++ {
		for _, m := range manifolds {
			solveManifoldVelocity(m, b, h)
		}
		for _, ct := range cts {
			solveConstraintVelocity(ct, b, h)
		}
	}

	b.Each(func(_ handle.Handle, body *Body) {
		body.integratePositions(h)
	})

	for iter := 0; iter < s.cfg.PositionIters; iter++ {
		for _, m := range manifolds {
			solveManifoldPosition(m, b, s.cfg.LinearSlop, s.cfg.MaxCorrection)
		}
		for _, ct := range cts {
			if ct.IsSoft() {
				continue // soft joints correct only through the velocity bias term
			}
			solveConstraintPosition(ct, b, s.cfg.MaxCorrection)
		}
	}

	updateSleep(b, islands, s.cfg, h)
}

func bodyPair(b bodies, pk PairKey) (*Body, *Body, bool) {
	a, okA := b.Get(pk.A)
	bb, okB := b.Get(pk.B)
	return a, bb, okA && okB
}

func warmStartManifold(m *Manifold, b bodies) {
	a, bb, ok := bodyPair(b, PairKey{A: m.BodyA, B: m.BodyB})
	if !ok {
		return
	}
	normal := m.Normal
	tangent := normal.Perp()
	for i := range m.Points {
		p := &m.Points[i]
		impulse := normal.Scale(p.NormalImpulse).Add(tangent.Scale(p.TangentImpulse))
		a.ApplyImpulseAt(impulse.Neg(), a.Pose.Apply(p.LocalAnchorA))
		bb.ApplyImpulseAt(impulse, bb.Pose.Apply(p.LocalAnchorB))
	}
}
