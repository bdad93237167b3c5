package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6dof pose, position and orientation, with respect to the origin.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with same orientation as whatever frame it is placed in.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	q := newDualQuaternion()
	q.Real = Normalize(o.Quaternion())
	q.SetTranslation(p)
	return q
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
// It will have the same orientation as the frame it is in.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := newDualQuaternion()
	q.SetTranslation(point)
	return q
}

// Compose treats Poses as functions A(x) and B(x), and produces a new function C(x) = A(B(x)).
// It converts the poses to dual quaternions and multiplies them together, normalizes the transform and returns a new Pose.
// Composition does not commute in general, i.e. you cannot guarantee ABx == BAx.
func Compose(a, b Pose) Pose {
	aq := newDualQuaternionFromPose(a)
	bq := newDualQuaternionFromPose(b)
	result := &dualQuaternion{aq.Transformation(bq.Number)}

	if n := quat.Abs(result.Real); n != 0 && n != 1 {
		result.Real = quat.Scale(1/n, result.Real)
		result.Dual = quat.Scale(1/n, result.Dual)
	}
	return result
}

// PoseInverse will return the inverse of a pose. So if a given pose p is the pose of A relative to B, PoseInverse(p) will give
// the pose of B relative to A.
func PoseInverse(p Pose) Pose {
	return &dualQuaternion{dualquat.ConjQuat(newDualQuaternionFromPose(p).Number)}
}

// TransformPoint applies pose p to the point pt.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	return Compose(p, NewPoseFromPoint(pt)).Point()
}

// PoseAlmostEqual reports whether a and b are within 1e-4 in position and equal in orientation.
func PoseAlmostEqual(a, b Pose) bool {
	return a.Point().Sub(b.Point()).Norm2() < 1e-8 && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}
