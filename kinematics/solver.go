package kinematics

import (
	"context"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/chainik/logging"
	"go.viam.com/chainik/utils"
)

// FrameInput is everything the host hands over for one frame.
type FrameInput struct {
	// Joints are the chain's joint handles, root first. There must be Length+1 of them.
	Joints []Joint
	// Target is where the end effector should go. A nil target skips the frame.
	Target Transform
	// Pole, when set, is the point interior joints bend toward.
	Pole *r3.Vector
}

// FrameReport describes what a call to Update did.
type FrameReport struct {
	Skipped       bool
	Reinitialized bool
	Grounded      bool
	Reachable     bool
	RolledBack    bool
	Iterations    int
	EffectorError float64
	PoleSkips     int

	// Positions is a copy of the positions written back to the host. It is only filled in when
	// debug lines are enabled.
	Positions []r3.Vector
}

// Solver runs the full per-frame pipeline for one chain. It is not safe for concurrent use; run
// independent chains on independent solvers.
type Solver struct {
	cfg    Config
	logger logging.Logger

	chain *Chain
	reach *ReachSolver
	guard *ObstacleGuard
	stats Stats
}

// NewSolver returns a solver for the chain described by cfg. The chain itself is captured from the
// host on the first frame.
func NewSolver(cfg *Config, raycaster Raycaster, logger logging.Logger) (*Solver, error) {
	if cfg == nil {
		return nil, errors.New("solver config is nil")
	}
	if err := cfg.Validate("solver"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("kinematics")
	}
	s := &Solver{
		cfg:    *cfg,
		logger: logger,
		reach:  NewReachSolver(cfg.iterations(), cfg.delta()),
		guard:  NewObstacleGuard(raycaster, cfg.layer()),
	}
	return s, nil
}

// Name returns the configured chain name.
func (s *Solver) Name() string {
	return s.cfg.Name
}

// Chain returns the chain captured on the most recent (re)initialization, or nil before the first
// solved frame.
func (s *Solver) Chain() *Chain {
	return s.chain
}

// ObstacleLayer returns the layer whose geometry blocks the chain.
func (s *Solver) ObstacleLayer() Layer {
	return s.guard.Layer()
}

// Stats returns the solver's counters.
func (s *Solver) Stats() *Stats {
	return &s.stats
}

// SetLength changes the number of segments. The chain is captured again on the next frame.
func (s *Solver) SetLength(length int) error {
	if length < 1 {
		return errors.Errorf("length must be at least 1, got %d", length)
	}
	s.cfg.Length = length
	return nil
}

// SetGrounded sets whether a foot chain is currently planted.
func (s *Solver) SetGrounded(grounded bool) {
	s.cfg.Grounded = grounded
}

// SetIterations changes the FABRIK round cap, clamped to [1, MaxIterations].
func (s *Solver) SetIterations(iterations int) {
	s.cfg.Iterations = utils.ClampInt(iterations, 1, MaxIterations)
	s.reach.Iterations = s.cfg.Iterations
}

// Delta returns the convergence distance.
func (s *Solver) Delta() float64 {
	return s.reach.Delta
}

// SetDelta changes the convergence distance.
func (s *Solver) SetDelta(delta float64) error {
	if delta <= 0 {
		return errors.Errorf("delta must be positive, got %v", delta)
	}
	s.cfg.Delta = delta
	s.reach.Delta = delta
	return nil
}

// Update solves one frame and writes the result back through in.Joints. An error is only returned
// when the host breaks its contract, in which case nothing is written.
func (s *Solver) Update(in FrameInput) (FrameReport, error) {
	report, err := s.update(in)
	if err != nil {
		return report, err
	}
	s.stats.record(context.Background(), s.cfg.Name, report)
	return report, nil
}

func (s *Solver) update(in FrameInput) (FrameReport, error) {
	var report FrameReport
	if in.Target == nil {
		s.logger.Debugw("target missing, skipping frame", "chain", s.cfg.Name)
		report.Skipped = true
		return report, nil
	}
	if len(in.Joints) != s.cfg.Length+1 {
		return report, NewJointCountMismatchError(s.cfg.Length, len(in.Joints))
	}

	if s.chain == nil || s.chain.Len() != s.cfg.Length {
		chain, err := NewChain(in.Joints, in.Target)
		if err != nil {
			return report, errors.Wrapf(err, "cannot capture chain %q", s.cfg.Name)
		}
		s.logger.Infow("chain initialized",
			"chain", s.cfg.Name,
			"segments", chain.Len(),
			"total_length", chain.TotalLength(),
		)
		s.chain = chain
		report.Reinitialized = true
	}

	positions, rollback := s.chain.Snapshot(in.Joints)

	if in.Pole != nil {
		report.PoleSkips = ApplyPole(positions, *in.Pole)
	}

	if s.cfg.Foot && s.cfg.Grounded {
		report.Grounded = true
		report.EffectorError = positions[len(positions)-1].Distance(in.Target.Position())
	} else {
		res := s.reach.Solve(s.chain, positions, in.Target.Position())
		report.Reachable = res.Reachable
		report.Iterations = res.Iterations
		report.EffectorError = res.EffectorError

		if s.guard.Check(positions, rollback) {
			s.logger.Debugw("solution blocked by obstacle, rolling back", "chain", s.cfg.Name)
			report.RolledBack = true
			report.EffectorError = positions[len(positions)-1].Distance(in.Target.Position())
		}
	}

	ApplyPose(s.chain, in.Joints, positions, in.Target.Orientation())
	if s.cfg.DebugLines {
		report.Positions = slices.Clone(positions)
	}
	return report, nil
}
