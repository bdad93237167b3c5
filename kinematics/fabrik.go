package kinematics

import (
	"github.com/golang/geo/r3"
)

// ReachSolver moves a chain's end effector onto a target while keeping every segment at its rest
// length. Reachable targets are solved with FABRIK; targets at or beyond the chain's total length
// straighten the chain along the root to target ray.
//
// Rounds run while the root is at least Delta from the target. On top of that guard, which is all
// plain FABRIK has, each round first asks Metric whether the end effector is already within Delta
// and stops if so. This early exit is an extension: a chain that is already solved reports zero
// iterations and is left as it was, where plain FABRIK would spend every round on it.
type ReachSolver struct {
	// Iterations caps the number of backward/forward rounds.
	Iterations int
	// Delta is the convergence distance.
	Delta float64
	// Metric decides when the end effector is close enough. Nil means SquaredNorm.
	Metric Metric
}

// ReachResult summarizes one call to Solve.
type ReachResult struct {
	Reachable     bool
	Iterations    int
	EffectorError float64
}

// NewReachSolver returns a solver using the SquaredNorm convergence metric.
func NewReachSolver(iterations int, delta float64) *ReachSolver {
	return &ReachSolver{Iterations: iterations, Delta: delta, Metric: SquaredNorm}
}

// Solve relaxes positions (root first, modified in place) onto target. positions[0] never moves.
func (s *ReachSolver) Solve(chain *Chain, positions []r3.Vector, target r3.Vector) ReachResult {
	last := len(positions) - 1
	root := positions[0]
	toTarget := target.Sub(root)

	if toTarget.Norm2() >= chain.TotalLength()*chain.TotalLength() {
		dir := toTarget.Normalize()
		for i := 1; i <= last; i++ {
			positions[i] = positions[i-1].Add(dir.Mul(chain.SegmentLength(i - 1)))
		}
		return ReachResult{EffectorError: positions[last].Distance(target)}
	}

	metric := s.Metric
	if metric == nil {
		metric = SquaredNorm
	}
	deltaSq := s.Delta * s.Delta
	result := ReachResult{Reachable: true}
	for ; result.Iterations < s.Iterations && toTarget.Norm2() >= deltaSq; result.Iterations++ {
		if metric(positions[last], target) < deltaSq {
			break
		}
		backwardPass(chain, positions, target)
		forwardPass(chain, positions)
	}
	result.EffectorError = positions[last].Distance(target)
	return result
}

// backwardPass pins the end effector to the target and pulls each joint, except the root, toward
// its effector-side neighbor.
func backwardPass(chain *Chain, positions []r3.Vector, target r3.Vector) {
	last := len(positions) - 1
	positions[last] = target
	for i := last - 1; i > 0; i-- {
		dir := direction(positions[i].Sub(positions[i+1]), chain.RestVector(i).Mul(-1))
		positions[i] = positions[i+1].Add(dir.Mul(chain.SegmentLength(i)))
	}
}

// forwardPass re-anchors the chain at the root, walking out to the end effector.
func forwardPass(chain *Chain, positions []r3.Vector) {
	for i := 1; i < len(positions); i++ {
		dir := direction(positions[i].Sub(positions[i-1]), chain.RestVector(i-1))
		positions[i] = positions[i-1].Add(dir.Mul(chain.SegmentLength(i - 1)))
	}
}

// direction normalizes v, or fallback when v has collapsed to a point.
func direction(v, fallback r3.Vector) r3.Vector {
	if v.Norm2() < degenerateTolerance {
		return fallback.Normalize()
	}
	return v.Normalize()
}
