// Package kinematics solves a single articulated chain towards a moving target once per frame.
//
// A frame runs the following steps in order: snapshot the host joint positions, bend interior
// joints toward an optional pole, relax the chain onto the target with FABRIK (or straighten it
// when the target is out of reach), reject the solution if any link passes through an obstacle,
// and finally rebuild joint rotations from the solved positions and write both back to the host.
package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Transform is a read-only, host-owned world-space position and orientation.
type Transform interface {
	Position() r3.Vector
	Orientation() quat.Number
}

// Joint is a host-owned transform handle the solver reads from and writes back to.
type Joint interface {
	Transform
	SetPosition(r3.Vector)
	SetOrientation(quat.Number)
}

// Layer classifies scene geometry for raycasts.
type Layer int

// DefaultObstacleLayer is the layer treated as blocking when none is configured.
const DefaultObstacleLayer Layer = 9

// Hit describes the first geometry a ray struck.
type Hit struct {
	Point    r3.Vector
	Distance float64
	Layer    Layer
	Label    string
}

// Raycaster answers synchronous ray queries against the host's collision geometry. direction is
// normalized and only hits within maxDistance are reported.
type Raycaster interface {
	Raycast(origin, direction r3.Vector, maxDistance float64, layer Layer) (Hit, bool)
}

// RaycasterFunc adapts a function to the Raycaster interface.
type RaycasterFunc func(origin, direction r3.Vector, maxDistance float64, layer Layer) (Hit, bool)

// Raycast calls f.
func (f RaycasterFunc) Raycast(origin, direction r3.Vector, maxDistance float64, layer Layer) (Hit, bool) {
	return f(origin, direction, maxDistance, layer)
}

// noRaycaster never reports a hit.
type noRaycaster struct{}

func (noRaycaster) Raycast(r3.Vector, r3.Vector, float64, Layer) (Hit, bool) {
	return Hit{}, false
}
