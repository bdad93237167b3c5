package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/chainik/spatialmath"
)

// ApplyPose writes solved positions back to the host joints together with rotations rebuilt from
// the chain's rest pose.
//
// Every joint but the last is turned by the rotation taking its rest segment direction onto its
// solved segment direction, applied on top of its rest orientation. The end effector instead
// follows the target: its orientation is target * inverse(targetStart) * rest, so it keeps the
// offset to the target it had when the chain was built.
func ApplyPose(chain *Chain, joints []Joint, positions []r3.Vector, targetOrientation quat.Number) {
	last := len(positions) - 1
	for i := range positions {
		var rot quat.Number
		if i == last {
			rot = quat.Mul(
				quat.Mul(targetOrientation, spatialmath.QuatInverse(chain.TargetStartOrientation())),
				chain.RestOrientation(i),
			)
		} else {
			align := spatialmath.QuatFromToRotation(chain.RestVector(i), positions[i+1].Sub(positions[i]))
			rot = quat.Mul(align, chain.RestOrientation(i))
		}
		joints[i].SetOrientation(rot)
		joints[i].SetPosition(positions[i])
	}
}
