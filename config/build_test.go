package config

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/logging"
)

func TestBuild(t *testing.T) {
	logger := logging.NewTestLogger(t)
	scene, err := FromReader(context.Background(), "arm.json", strings.NewReader(strings.ReplaceAll(armScene, "${BALL_RADIUS}", "1")), logger)
	test.That(t, err, test.ShouldBeNil)

	host, err := scene.Build(logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, host.Effector.Name(), test.ShouldEqual, "hand")
	test.That(t, host.Target.Name(), test.ShouldEqual, DefaultTargetName)
	test.That(t, host.Target.Position().Distance(r3.Vector{X: 1, Y: 2}), test.ShouldBeLessThan, 1e-12)
	test.That(t, *host.Pole, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 2})
	test.That(t, host.World.Len(), test.ShouldEqual, 2)
	test.That(t, host.World.Geometries(3), test.ShouldHaveLength, 1)

	upper, err := host.Hierarchy.Node("upper")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, upper.Parent().Name(), test.ShouldEqual, "base")
	test.That(t, upper.Position().Distance(r3.Vector{X: 1}), test.ShouldBeLessThan, 1e-9)

	joints, err := host.Joints(scene.ConvertedSolver.Length)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, joints, test.ShouldHaveLength, 4)

	s, err := kinematics.NewSolver(scene.ConvertedSolver, host.World, logger)
	test.That(t, err, test.ShouldBeNil)
	report, err := s.Update(kinematics.FrameInput{Joints: joints, Target: host.Target, Pole: host.Pole})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.Reachable, test.ShouldBeTrue)
	test.That(t, host.Effector.Position().Distance(host.Target.Position()), test.ShouldBeLessThan, 0.01)
}
