package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Plane is an infinite plane described by a unit normal and a point on it.
type Plane struct {
	normal r3.Vector
	point  r3.Vector
}

// NewPlane builds the plane through point with the given normal. ok is false when the normal has
// no usable direction.
func NewPlane(normal, point r3.Vector) (Plane, bool) {
	n := normal.Norm()
	if n < directionEpsilon {
		return Plane{}, false
	}
	return Plane{normal: normal.Mul(1 / n), point: point}, true
}

// Normal returns the unit normal of the plane.
func (p Plane) Normal() r3.Vector {
	return p.normal
}

// Point returns the anchor point of the plane.
func (p Plane) Point() r3.Vector {
	return p.point
}

// DistanceTo returns the signed distance of pt from the plane, positive on the normal side.
func (p Plane) DistanceTo(pt r3.Vector) float64 {
	return pt.Sub(p.point).Dot(p.normal)
}

// ClosestPoint projects pt onto the plane.
func (p Plane) ClosestPoint(pt r3.Vector) r3.Vector {
	return pt.Sub(p.normal.Mul(p.DistanceTo(pt)))
}
