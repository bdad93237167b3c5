package config

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/chainik/collision"
	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/logging"
	"go.viam.com/chainik/referenceframe"
	"go.viam.com/chainik/spatialmath"
)

// DefaultTargetName names the target node when the scene leaves it blank.
const DefaultTargetName = "target"

// Host is a scene built into live objects a solver can drive.
type Host struct {
	Hierarchy *referenceframe.Hierarchy
	Effector  *referenceframe.Node
	Target    *referenceframe.Node
	World     *collision.World
	Pole      *r3.Vector
}

// Joints walks the configured number of segments up from the effector.
func (h *Host) Joints(length int) ([]kinematics.Joint, error) {
	return referenceframe.WalkChain(h.Effector, length)
}

// Build creates the node hierarchy and collision world described by the scene. Joints are
// parented one to the next in file order under the world; the target hangs off the world.
func (s *Scene) Build(logger logging.Logger) (*Host, error) {
	h := referenceframe.NewHierarchy()
	parent := referenceframe.World
	var effector *referenceframe.Node
	for _, j := range s.Joints {
		n, err := h.Add(j.Name, parent, nil)
		if err != nil {
			return nil, err
		}
		n.SetWorldPose(spatialmath.NewPose(j.Position.R3(), Orientation(j.Orientation)))
		parent, effector = j.Name, n
	}
	if effector == nil {
		return nil, errors.New("scene has no joints")
	}

	targetName := s.Target.Name
	if targetName == "" {
		targetName = DefaultTargetName
	}
	target, err := h.Add(targetName, referenceframe.World, s.Target.PoseAt(0))
	if err != nil {
		return nil, err
	}

	world := collision.NewWorld(logger)
	for _, o := range s.Obstacles {
		layer := kinematics.DefaultObstacleLayer
		if o.Layer != nil {
			layer = kinematics.Layer(*o.Layer)
		}
		world.Add(o.geometry(), layer)
	}

	host := &Host{Hierarchy: h, Effector: effector, Target: target, World: world}
	if s.Pole != nil {
		p := s.Pole.R3()
		host.Pole = &p
	}
	return host, nil
}

func (o *Obstacle) geometry() collision.Geometry {
	pose := spatialmath.NewPose(o.Center.R3(), Orientation(o.Orientation))
	switch o.Type {
	case SphereType:
		return collision.NewSphere(o.Center.R3(), o.Radius, o.Label)
	case CapsuleType:
		return collision.NewCapsule(pose, o.Radius, o.Length, o.Label)
	default:
		return collision.NewBox(pose, o.Dims.R3().Mul(0.5), o.Label)
	}
}
