package rigid2d

// config.go reduces CreateWorldWithOptions' API footprint using
// functional options rather than a growing positional-argument list.
//
//	rigid2d.CreateWorldWithOptions(0, -9.81,
//	    rigid2d.SubStepRate(120),
//	    rigid2d.Iterations(10, 4),
//	    rigid2d.SleepThresholds(0.02, 0.02, 1.0),
//	)

import (
	"github.com/jsvd/rigid2d/math2"
	"github.com/jsvd/rigid2d/physics"
)

// WorldOption overrides one or more solver tunables away from their
// documented defaults. For use with CreateWorldWithOptions.
type WorldOption func(*physics.SolverConfig)

// SubStepRate overrides the fixed sub-step frequency (default 60Hz).
// Values outside (0, 1000] are ignored.
func SubStepRate(hz float64) WorldOption {
	return func(c *physics.SolverConfig) {
		if hz > 0 && hz <= 1000 {
			c.SubStepHz = hz
		}
	}
}

// MaxSubSteps overrides the accumulator's spiral-of-death cap (default 8).
func MaxSubSteps(n int) WorldOption {
	return func(c *physics.SolverConfig) {
		if n > 0 {
			c.MaxSubSteps = n
		}
	}
}

// Iterations overrides the velocity and position solver iteration
// counts (defaults 8 and 3).
func Iterations(velocity, position int) WorldOption {
	return func(c *physics.SolverConfig) {
		if velocity > 0 {
			c.VelocityIters = velocity
		}
		if position > 0 {
			c.PositionIters = position
		}
	}
}

// CollisionSlop overrides the linear slop and max per-iteration
// positional correction (defaults 0.005 and 0.2).
func CollisionSlop(linearSlop, maxCorrection float64) WorldOption {
	return func(c *physics.SolverConfig) {
		if linearSlop >= 0 {
			c.LinearSlop = linearSlop
		}
		if maxCorrection > 0 {
			c.MaxCorrection = maxCorrection
		}
	}
}

// SleepThresholds overrides the linear/angular speed thresholds and the
// continuous-stillness duration a body must meet to become a sleep
// candidate (defaults 0.01, 0.01, 0.5s).
func SleepThresholds(linear, angular, seconds float64) WorldOption {
	return func(c *physics.SolverConfig) {
		if linear >= 0 {
			c.SleepLinearTol = linear
		}
		if angular >= 0 {
			c.SleepAngularTol = angular
		}
		if seconds >= 0 {
			c.SleepTime = seconds
		}
	}
}

// CreateWorldWithOptions is CreateWorld with additional solver tuning,
// applied over DefaultSolverConfig in order. Replaces (and discards)
// any world already live, same as CreateWorld.
func CreateWorldWithOptions(gx, gy float64, opts ...WorldOption) {
	CreateWorld(gx, gy)
	if current == nil {
		return
	}
	cfg := physics.DefaultSolverConfig()
	cfg.Gravity = math2.Vec2{X: gx, Y: gy}
	for _, opt := range opts {
		opt(&cfg)
	}
	current.sim = physics.NewWorld(cfg)
}
