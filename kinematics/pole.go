package kinematics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/chainik/spatialmath"
)

// squared distances below this are treated as coincident points.
const degenerateTolerance = 1e-10

// ApplyPole bends every interior joint toward pole. For joint i the bend plane has normal
// positions[i+1]-positions[i-1] and passes through positions[i-1]; the joint is swung about that
// normal until its projection lines up with the projection of the pole. Joints are processed root
// to effector in place, so joint i sees the already-bent joint i-1.
//
// Joints whose neighbors coincide, or whose projection (or the pole's) lands on positions[i-1],
// are left alone. The number of joints left alone is returned.
func ApplyPole(positions []r3.Vector, pole r3.Vector) int {
	skipped := 0
	for i := 1; i < len(positions)-1; i++ {
		prev := positions[i-1]
		plane, ok := spatialmath.NewPlane(positions[i+1].Sub(prev), prev)
		if !ok || positions[i+1].Sub(prev).Norm2() < degenerateTolerance {
			skipped++
			continue
		}

		toBone := plane.ClosestPoint(positions[i]).Sub(prev)
		toPole := plane.ClosestPoint(pole).Sub(prev)
		if toBone.Norm2() < degenerateTolerance || toPole.Norm2() < degenerateTolerance {
			skipped++
			continue
		}

		angle := spatialmath.SignedAngle(toBone, toPole, plane.Normal())
		rot := spatialmath.QuatFromAxisAngle(plane.Normal(), angle)
		positions[i] = prev.Add(spatialmath.RotateVector(rot, positions[i].Sub(prev)))
	}
	return skipped
}
