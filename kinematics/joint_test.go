package kinematics

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

type testJoint struct {
	pos r3.Vector
	rot quat.Number
}

func (j *testJoint) Position() r3.Vector          { return j.pos }
func (j *testJoint) Orientation() quat.Number     { return j.rot }
func (j *testJoint) SetPosition(p r3.Vector)      { j.pos = p }
func (j *testJoint) SetOrientation(q quat.Number) { j.rot = q }

func newTestJoints(points ...r3.Vector) []Joint {
	joints := make([]Joint, 0, len(points))
	for _, p := range points {
		joints = append(joints, &testJoint{pos: p, rot: quat.Number{Real: 1}})
	}
	return joints
}

func newTestTarget(p r3.Vector) *testJoint {
	return &testJoint{pos: p, rot: quat.Number{Real: 1}}
}

func jointPositions(joints []Joint) []r3.Vector {
	out := make([]r3.Vector, 0, len(joints))
	for _, j := range joints {
		out = append(out, j.Position())
	}
	return out
}

func assertVector(t *testing.T, got, want r3.Vector, tol float64) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, want.X, tol)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, tol)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, tol)
}
