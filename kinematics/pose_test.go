package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/chainik/spatialmath"
)

func TestApplyPose(t *testing.T) {
	chain, joints := newTestChain(t, r3.Vector{X: 3}, r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 2})
	positions := []r3.Vector{{}, {Y: 1}, {Y: 1, Z: 1}}
	targetRot := spatialmath.QuatFromAxisAngle(r3.Vector{Y: 1}, math.Pi/3)

	ApplyPose(chain, joints, positions, targetRot)

	test.That(t, jointPositions(joints), test.ShouldResemble, positions)

	// +X onto +Y is a quarter turn about +Z
	want := spatialmath.QuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2)
	test.That(t, spatialmath.QuaternionAlmostEqual(joints[0].Orientation(), want, 1e-9), test.ShouldBeTrue)

	// +X onto +Z
	dir := spatialmath.RotateVector(joints[1].Orientation(), r3.Vector{X: 1})
	assertVector(t, dir, r3.Vector{Z: 1}, 1e-9)

	// the effector follows the target rotation
	test.That(t, spatialmath.QuaternionAlmostEqual(joints[2].Orientation(), targetRot, 1e-9), test.ShouldBeTrue)
}

func TestApplyPoseKeepsRestOffsets(t *testing.T) {
	joints := newTestJoints(r3.Vector{}, r3.Vector{X: 1})
	restRot := spatialmath.QuatFromAxisAngle(r3.Vector{X: 1}, math.Pi/4)
	joints[0].SetOrientation(restRot)
	joints[1].SetOrientation(restRot)
	target := newTestTarget(r3.Vector{X: 2})
	target.rot = spatialmath.QuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2)

	chain, err := NewChain(joints, target)
	test.That(t, err, test.ShouldBeNil)

	// nothing moved: every joint keeps its rest orientation
	positions, _ := chain.Snapshot(joints)
	ApplyPose(chain, joints, positions, target.Orientation())
	test.That(t, spatialmath.QuaternionAlmostEqual(joints[0].Orientation(), restRot, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.QuaternionAlmostEqual(joints[1].Orientation(), restRot, 1e-9), test.ShouldBeTrue)

	// the target turns by a further quarter turn about Z, the effector turns with it
	turn := spatialmath.QuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2)
	ApplyPose(chain, joints, positions, quat.Mul(turn, target.Orientation()))
	test.That(t, spatialmath.QuaternionAlmostEqual(joints[1].Orientation(), quat.Mul(turn, restRot), 1e-9), test.ShouldBeTrue)
}
