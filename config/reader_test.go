package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/logging"
)

const armScene = `{
	"joints": [
		{"name": "base", "position": {"x": 0, "y": 0, "z": 0}},
		{"name": "upper", "position": {"x": 1, "y": 0, "z": 0}},
		{"name": "lower", "position": {"x": 2, "y": 0, "z": 0}},
		{"name": "hand", "position": {"x": 3, "y": 0, "z": 0}}
	],
	"target": {
		"position": {"x": 1, "y": 2, "z": 0},
		"path": [{"frame": 10, "position": {"x": 2, "y": 1, "z": 0}, "orientation": {"th": 90, "x": 0, "y": 0, "z": 1}}]
	},
	"pole": {"x": 1, "y": 1, "z": 2},
	"obstacles": [
		{"type": "box", "label": "crate", "center": {"x": 5, "y": 5, "z": 0}, "dims": {"x": 1, "y": 1, "z": 1}},
		{"type": "sphere", "label": "ball", "center": {"x": -5, "y": 0, "z": 0}, "radius": ${BALL_RADIUS}, "layer": 3}
	],
	"solver": {"name": "arm", "length": 3, "iterations": 20, "delta": 0.001, "obstacle_layer": 9},
	"fps": 30
}`

func TestRead(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	t.Setenv("BALL_RADIUS", "0.5")
	path := filepath.Join(t.TempDir(), "arm.json")
	test.That(t, os.WriteFile(path, []byte(armScene), 0o600), test.ShouldBeNil)

	scene, err := Read(context.Background(), path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scene.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, scene.Joints, test.ShouldHaveLength, 4)
	test.That(t, scene.Obstacles[1].Radius, test.ShouldEqual, 0.5)
	test.That(t, *scene.Obstacles[1].Layer, test.ShouldEqual, 3)
	test.That(t, scene.FrameCount(), test.ShouldEqual, 11)

	layer := 9
	test.That(t, scene.ConvertedSolver, test.ShouldResemble, &kinematics.Config{
		Name: "arm", Length: 3, Iterations: 20, Delta: 0.001, ObstacleLayer: &layer,
	})
	test.That(t, logs.FilterMessage("scene loaded").Len(), test.ShouldEqual, 1)

	_, err = Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"), logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFromReaderValidate(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	_, err := FromReader(ctx, "somepath", strings.NewReader(""), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "EOF")

	_, err = FromReader(ctx, "somepath", strings.NewReader(`{"joints": 1}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unmarshal")

	_, err = FromReader(ctx, "somepath", strings.NewReader(`{"solver": {"length": 1, "lenght": 2}}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "lenght")

	_, err = FromReader(ctx, "somepath", strings.NewReader(`{
		"joints": [{"name": "a"}, {"name": "a"}, {}, {"name": "bad name"}],
		"obstacles": [{"type": "cone"}, {"type": "capsule", "radius": 1, "length": 1}],
		"solver": {"length": 5, "iterations": 500},
		"frames": -1
	}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	for _, want := range []string{
		`duplicate name "a"`,
		"joints.2: name is required",
		`unknown type "cone"`,
		"twice its radius",
		"iterations must be within",
		"needs more than the 4 joints",
		`joints.3: name "bad name" may only contain`,
		"frames: must not be negative",
	} {
		test.That(t, err.Error(), test.ShouldContainSubstring, want)
	}

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = FromReader(ctx, "somepath", strings.NewReader(`{}`), logger)
	test.That(t, err, test.ShouldEqual, context.Canceled)
}

func TestSceneValidateAggregates(t *testing.T) {
	scene := &Scene{Joints: []Joint{{Name: "only"}}, FPS: -1}
	err := scene.Validate()
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 2)
}

func TestTargetPoseAt(t *testing.T) {
	target := Target{
		Position: Vector{X: 0},
		Path: []Keyframe{
			{Frame: 10, Position: Vector{X: 10}},
			{Frame: 20, Position: Vector{X: 10, Y: 10}},
		},
	}
	test.That(t, target.PoseAt(0).Point().Norm(), test.ShouldBeLessThan, 1e-12)
	test.That(t, target.PoseAt(5).Point().X, test.ShouldAlmostEqual, 5.)
	test.That(t, target.PoseAt(15).Point().Y, test.ShouldAlmostEqual, 5.)
	test.That(t, target.PoseAt(99).Point().Y, test.ShouldAlmostEqual, 10.)

	still := Target{Position: Vector{Y: 2}}
	test.That(t, still.PoseAt(7).Point().Distance(r3.Vector{Y: 2}), test.ShouldBeLessThan, 1e-12)
}

func TestSchema(t *testing.T) {
	for _, get := range []func() ([]byte, error){Schema, SolverSchema} {
		raw, err := get()
		test.That(t, err, test.ShouldBeNil)
		var doc map[string]interface{}
		test.That(t, json.Unmarshal(raw, &doc), test.ShouldBeNil)
		_, ok := doc["$schema"]
		test.That(t, ok, test.ShouldBeTrue)
	}
	raw, err := SolverSchema()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(raw), test.ShouldContainSubstring, "obstacle_layer")
}

func TestSceneVersion(t *testing.T) {
	scene := func(version string) *Scene {
		return &Scene{Version: version, Joints: []Joint{{Name: "root"}, {Name: "tip"}}}
	}
	test.That(t, scene("").Validate(), test.ShouldBeNil)
	test.That(t, scene("1.0.0").Validate(), test.ShouldBeNil)
	test.That(t, scene("1.4").Validate(), test.ShouldBeNil)

	err := scene("2.0.0").Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "2.0.0 is not supported")

	err = scene("one").Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `cannot parse "one"`)

	bad := scene("")
	bad.Target.Name = "the target"
	test.That(t, bad.Validate(), test.ShouldNotBeNil)
}
