// Package config reads scene files describing a demo host for the chain solver: the joint
// hierarchy, a moving target, an optional pole, obstacles, and the solver's own settings.
package config

import (
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/spatialmath"
	"go.viam.com/chainik/utils"
)

// Obstacle shapes understood by the scene reader.
const (
	BoxType     = "box"
	SphereType  = "sphere"
	CapsuleType = "capsule"
)

// DefaultFrames is how many frames a scene runs for when it does not say.
const DefaultFrames = 1

// SupportedVersions is the range of scene file versions this reader understands. Files without a
// version are read as the newest.
const SupportedVersions = "^1.0.0"

// Vector is a point or direction in scene units.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// R3 converts v to an r3.Vector.
func (v Vector) R3() r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// AttributeMap is a free-form set of attributes decoded later into a typed config.
type AttributeMap map[string]interface{}

// Joint is one node of the scene's chain, posed in world space.
type Joint struct {
	Name     string `json:"name"`
	Position Vector `json:"position"`
	// Orientation is an axis-angle in degrees. It defaults to no rotation.
	Orientation *spatialmath.R4AA `json:"orientation,omitempty"`
}

// Keyframe pins the target to a pose at a given frame.
type Keyframe struct {
	Frame       int               `json:"frame"`
	Position    Vector            `json:"position"`
	Orientation *spatialmath.R4AA `json:"orientation,omitempty"`
}

// Target is where the chain's end effector is driven. Without a path it stays where it starts.
type Target struct {
	Name        string            `json:"name,omitempty"`
	Position    Vector            `json:"position"`
	Orientation *spatialmath.R4AA `json:"orientation,omitempty"`
	Path        []Keyframe        `json:"path,omitempty"`
}

// Obstacle is a solid placed in the scene's collision world.
type Obstacle struct {
	Type        string            `json:"type" jsonschema:"enum=box,enum=sphere,enum=capsule"`
	Label       string            `json:"label,omitempty"`
	Center      Vector            `json:"center"`
	Orientation *spatialmath.R4AA `json:"orientation,omitempty"`
	// Dims are the full edge lengths of a box.
	Dims   *Vector `json:"dims,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	// Length is the full length of a capsule, caps included.
	Length float64 `json:"length,omitempty"`
	Layer  *int    `json:"layer,omitempty"`
}

// Scene is the top level of a scene file.
type Scene struct {
	ConfigFilePath string `json:"-"`

	Version string `json:"version,omitempty" jsonschema:"example=1.0.0"`

	Joints    []Joint      `json:"joints"`
	Target    Target       `json:"target"`
	Pole      *Vector      `json:"pole,omitempty"`
	Obstacles []Obstacle   `json:"obstacles,omitempty"`
	Solver    AttributeMap `json:"solver"`
	Frames    int          `json:"frames,omitempty"`
	FPS       float64      `json:"fps,omitempty"`

	// ConvertedSolver is filled in from Solver when the scene is processed.
	ConvertedSolver *kinematics.Config `json:"-"`
}

// DecodeSolver turns the solver attributes into a kinematics config.
func (s *Scene) DecodeSolver() (*kinematics.Config, error) {
	var conf kinematics.Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &conf, ErrorUnused: true})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(s.Solver); err != nil {
		return nil, errors.Wrap(err, "error decoding solver attributes")
	}
	return &conf, nil
}

// Validate ensures all parts of the scene are valid.
func (s *Scene) Validate() error {
	err := s.validateVersion()
	if len(s.Joints) < 2 {
		err = multierr.Append(err, errors.Errorf("joints: need at least 2, got %d", len(s.Joints)))
	}
	seen := map[string]bool{}
	for i, j := range s.Joints {
		switch {
		case j.Name == "":
			err = multierr.Append(err, errors.Errorf("joints.%d: name is required", i))
		case !utils.ValidNameRegex.MatchString(j.Name):
			err = multierr.Append(err, errors.Wrapf(utils.ErrInvalidName(j.Name), "joints.%d", i))
		case seen[j.Name]:
			err = multierr.Append(err, errors.Errorf("joints.%d: duplicate name %q", i, j.Name))
		}
		seen[j.Name] = true
	}
	if s.Target.Name != "" && !utils.ValidNameRegex.MatchString(s.Target.Name) {
		err = multierr.Append(err, errors.Wrap(utils.ErrInvalidName(s.Target.Name), "target"))
	}
	if s.Frames < 0 {
		err = multierr.Append(err, errors.Errorf("frames: must not be negative, got %d", s.Frames))
	}
	if s.FPS < 0 {
		err = multierr.Append(err, errors.Errorf("fps: must not be negative, got %v", s.FPS))
	}
	for i, kf := range s.Target.Path {
		if kf.Frame < 0 {
			err = multierr.Append(err, errors.Errorf("target.path.%d: frame must not be negative", i))
		}
	}
	for i, o := range s.Obstacles {
		err = multierr.Append(err, o.Validate(i))
	}
	if s.ConvertedSolver != nil {
		err = multierr.Append(err, s.ConvertedSolver.Validate("solver"))
		if limit := len(s.Joints) - 1; limit >= 1 && s.ConvertedSolver.Length > limit {
			err = multierr.Append(err, errors.Errorf("solver: length %d needs more than the %d joints in the scene", s.ConvertedSolver.Length, len(s.Joints)))
		}
	}
	return err
}

func (s *Scene) validateVersion() error {
	if s.Version == "" {
		return nil
	}
	v, err := semver.NewVersion(s.Version)
	if err != nil {
		return errors.Wrapf(err, "version: cannot parse %q", s.Version)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return errors.Errorf("version: %s is not supported, want %s", v, SupportedVersions)
	}
	return nil
}

// Validate checks the obstacle at index i of the scene.
func (o *Obstacle) Validate(i int) error {
	var err error
	switch o.Type {
	case BoxType:
		if o.Dims == nil || o.Dims.X <= 0 || o.Dims.Y <= 0 || o.Dims.Z <= 0 {
			err = multierr.Append(err, errors.Errorf("obstacles.%d: box dims must all be positive", i))
		}
	case SphereType:
		if o.Radius <= 0 {
			err = multierr.Append(err, errors.Errorf("obstacles.%d: sphere radius must be positive", i))
		}
	case CapsuleType:
		if o.Radius <= 0 {
			err = multierr.Append(err, errors.Errorf("obstacles.%d: capsule radius must be positive", i))
		}
		if o.Length < 2*o.Radius {
			err = multierr.Append(err, errors.Errorf("obstacles.%d: capsule length must be at least twice its radius", i))
		}
	default:
		err = multierr.Append(err, errors.Errorf("obstacles.%d: unknown type %q", i, o.Type))
	}
	if o.Layer != nil && (*o.Layer < 0 || *o.Layer > 31) {
		err = multierr.Append(err, errors.Errorf("obstacles.%d: layer must be within [0, 31]", i))
	}
	return err
}

// Orientation converts an axis-angle given in degrees to an orientation. nil means no rotation.
func Orientation(aa *spatialmath.R4AA) spatialmath.Orientation {
	if aa == nil {
		return spatialmath.NewZeroOrientation()
	}
	rad := &spatialmath.R4AA{Theta: utils.DegToRad(aa.Theta), RX: aa.RX, RY: aa.RY, RZ: aa.RZ}
	return spatialmath.NewOrientationFromQuat(rad.ToQuat())
}

// PoseAt returns where the target should be on frame. The start pose counts as a keyframe at
// frame 0. Positions between keyframes are interpolated linearly and orientations with slerp.
// After the last keyframe the target holds still.
func (t *Target) PoseAt(frame int) spatialmath.Pose {
	start := Keyframe{Frame: 0, Position: t.Position, Orientation: t.Orientation}
	if len(t.Path) == 0 {
		return spatialmath.NewPose(start.Position.R3(), Orientation(start.Orientation))
	}
	keys := append([]Keyframe{start}, t.Path...)
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Frame < keys[j].Frame })

	if frame <= keys[0].Frame {
		return spatialmath.NewPose(keys[0].Position.R3(), Orientation(keys[0].Orientation))
	}
	for i := 1; i < len(keys); i++ {
		a, b := keys[i-1], keys[i]
		if frame > b.Frame {
			continue
		}
		amount := 1.0
		if span := b.Frame - a.Frame; span > 0 {
			amount = float64(frame-a.Frame) / float64(span)
		}
		pos := a.Position.R3().Add(b.Position.R3().Sub(a.Position.R3()).Mul(amount))
		qa := spatialmath.QuatToMgl(Orientation(a.Orientation).Quaternion())
		qb := spatialmath.QuatToMgl(Orientation(b.Orientation).Quaternion())
		q := mgl64.QuatSlerp(qa, qb, amount)
		return spatialmath.NewPose(pos, spatialmath.NewOrientationFromQuat(spatialmath.MglToQuat(q)))
	}
	last := keys[len(keys)-1]
	return spatialmath.NewPose(last.Position.R3(), Orientation(last.Orientation))
}

// FrameCount returns how many frames the scene runs for.
func (s *Scene) FrameCount() int {
	if s.Frames > 0 {
		return s.Frames
	}
	n := DefaultFrames
	for _, kf := range s.Target.Path {
		if kf.Frame+1 > n {
			n = kf.Frame + 1
		}
	}
	return n
}
