package referenceframe

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/logging"
	"go.viam.com/chainik/spatialmath"
)

func buildArm(t *testing.T) *Hierarchy {
	t.Helper()
	h := NewHierarchy()
	_, err := h.Add("base", World, spatialmath.NewPoseFromPoint(r3.Vector{Z: 1}))
	test.That(t, err, test.ShouldBeNil)
	_, err = h.Add("shoulder", "base", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, err, test.ShouldBeNil)
	_, err = h.Add("elbow", "shoulder", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, err, test.ShouldBeNil)
	_, err = h.Add("wrist", "elbow", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, err, test.ShouldBeNil)
	return h
}

func TestHierarchyAdd(t *testing.T) {
	h := buildArm(t)
	test.That(t, h.Names(), test.ShouldResemble, []string{"base", "elbow", "shoulder", "world", "wrist"})

	_, err := h.Add("elbow", "base", nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "already exists")

	_, err = h.Add("finger", "hand", nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `parent "hand"`)

	_, err = h.Node("hand")
	test.That(t, err, test.ShouldNotBeNil)

	wrist, err := h.Node("wrist")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, wrist.Position().Distance(r3.Vector{X: 3, Z: 1}), test.ShouldBeLessThan, 1e-12)

	trace, err := h.Traceback("wrist")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, trace, test.ShouldHaveLength, 5)
	test.That(t, trace[4], test.ShouldEqual, h.World())

	base, err := h.Node("base")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, base.Children(), test.ShouldHaveLength, 1)
	test.That(t, base.Parent(), test.ShouldEqual, h.World())
}

func TestNodeWorldSetters(t *testing.T) {
	h := buildArm(t)
	shoulder, _ := h.Node("shoulder")
	elbow, _ := h.Node("elbow")
	wrist, _ := h.Node("wrist")

	// turning the shoulder swings everything below it
	shoulder.SetOrientation(spatialmath.QuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2))
	p := wrist.Position()
	test.That(t, p.X, test.ShouldAlmostEqual, 1.)
	test.That(t, p.Y, test.ShouldAlmostEqual, 2.)
	test.That(t, p.Z, test.ShouldAlmostEqual, 1.)
	test.That(t, shoulder.Position().X, test.ShouldAlmostEqual, 1.)

	// moving a child in world space leaves its parent alone
	elbow.SetPosition(r3.Vector{X: 5, Y: 5, Z: 5})
	p = elbow.Position()
	test.That(t, p.X, test.ShouldAlmostEqual, 5.)
	test.That(t, p.Y, test.ShouldAlmostEqual, 5.)
	test.That(t, p.Z, test.ShouldAlmostEqual, 5.)
	test.That(t, shoulder.Position().Y, test.ShouldAlmostEqual, 0.)
	test.That(t, spatialmath.QuaternionAlmostEqual(elbow.Orientation(), shoulder.Orientation(), 1e-9), test.ShouldBeTrue)
}

func TestWalkChain(t *testing.T) {
	h := buildArm(t)
	wrist, _ := h.Node("wrist")

	joints, err := WalkChain(wrist, 3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, joints, test.ShouldHaveLength, 4)
	test.That(t, joints[0].(*Node).Name(), test.ShouldEqual, "base")
	test.That(t, joints[3].(*Node).Name(), test.ShouldEqual, "wrist")

	_, err = WalkChain(wrist, 4)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "reaches past the world")

	_, err = WalkChain(nil, 1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSolveHierarchy(t *testing.T) {
	h := buildArm(t)
	wrist, _ := h.Node("wrist")
	target, err := h.Add("target", World, spatialmath.NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 1}))
	test.That(t, err, test.ShouldBeNil)

	joints, err := WalkChain(wrist, 3)
	test.That(t, err, test.ShouldBeNil)
	s, err := kinematics.NewSolver(&kinematics.Config{Length: 3, Iterations: 50}, nil, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	pole := r3.Vector{X: 1, Y: 1, Z: 3}
	report, err := s.Update(kinematics.FrameInput{Joints: joints, Target: target, Pole: &pole})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.Reachable, test.ShouldBeTrue)
	test.That(t, wrist.Position().Distance(target.Position()), test.ShouldBeLessThan, 0.01)

	base, _ := h.Node("base")
	test.That(t, base.Position().Distance(r3.Vector{Z: 1}), test.ShouldBeLessThan, 1e-9)
	for _, name := range []string{"shoulder", "elbow", "wrist"} {
		n, _ := h.Node(name)
		test.That(t, n.Position().Distance(n.Parent().Position()), test.ShouldAlmostEqual, 1., 1e-6)
	}
	test.That(t, h.String(), test.ShouldContainSubstring, "wrist")
}
