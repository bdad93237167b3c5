package kinematics

import (
	"github.com/golang/geo/r3"
)

// Metric measures how far a solved end effector is from where it should be. Its result is
// compared against the square of the solver's Delta.
type Metric func(from, to r3.Vector) float64

// SquaredNorm is the default convergence metric.
func SquaredNorm(from, to r3.Vector) float64 {
	return from.Sub(to).Norm2()
}
