package collision

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/chainik/spatialmath"
)

// Geometry is a solid that rays can be cast against.
type Geometry interface {
	// Raycast returns the distance along a normalized ray to the first surface it enters. Rays
	// starting inside the solid report no hit.
	Raycast(origin, direction r3.Vector, maxDistance float64) (float64, bool)
	Center() r3.Vector
	Label() string
}

// Box is an oriented box.
type Box struct {
	Position r3.Vector
	Axes     axes
	HalfSize r3.Vector
	label    string
}

type axes struct {
	X r3.Vector
	Y r3.Vector
	Z r3.Vector
}

func (a axes) at(i int) r3.Vector {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// NewBox initializes a new 3D box from a pose and a half size vector.
func NewBox(center spatialmath.Pose, halfSize r3.Vector, label string) *Box {
	q := center.Orientation().Quaternion()
	return &Box{
		Position: center.Point(),
		Axes: axes{
			spatialmath.RotateVector(q, r3.Vector{X: 1}),
			spatialmath.RotateVector(q, r3.Vector{Y: 1}),
			spatialmath.RotateVector(q, r3.Vector{Z: 1}),
		},
		HalfSize: halfSize,
		label:    label,
	}
}

// Center returns the center of the box.
func (b *Box) Center() r3.Vector {
	return b.Position
}

// Label returns the name of the box.
func (b *Box) Label() string {
	return b.label
}

// Vertices returns the eight corners of the box.
func (b *Box) Vertices() []r3.Vector {
	verts := make([]r3.Vector, 0, 8)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				verts = append(verts, b.Position.
					Add(b.Axes.X.Mul(sx*b.HalfSize.X)).
					Add(b.Axes.Y.Mul(sy*b.HalfSize.Y)).
					Add(b.Axes.Z.Mul(sz*b.HalfSize.Z)))
			}
		}
	}
	return verts
}

// Raycast intersects the ray with the three slabs of the box.
func (b *Box) Raycast(origin, direction r3.Vector, maxDistance float64) (float64, bool) {
	rel := origin.Sub(b.Position)
	half := [3]float64{b.HalfSize.X, b.HalfSize.Y, b.HalfSize.Z}
	tNear, tFar := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		axis := b.Axes.at(i)
		o := rel.Dot(axis)
		d := direction.Dot(axis)
		if math.Abs(d) < 1e-12 {
			if math.Abs(o) > half[i] {
				return 0, false
			}
			continue
		}
		t1 := (-half[i] - o) / d
		t2 := (half[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}
	if tNear < 0 || tNear > maxDistance {
		return 0, false
	}
	return tNear, true
}

// BoxVsBox takes two Boxes as arguments and returns a bool describing if they are in collision
// reference: https://gamedev.stackexchange.com/questions/112883/simple-3d-obb-collision-directx9-c
func BoxVsBox(a, b *Box) bool {
	positionDelta := a.Position.Sub(b.Position)
	for i := 0; i < 3; i++ {
		if separatingPlaneTest(positionDelta, a.Axes.at(i), a, b) || separatingPlaneTest(positionDelta, b.Axes.at(i), a, b) {
			return false
		}
		for j := 0; j < 3; j++ {
			if separatingPlaneTest(positionDelta, a.Axes.at(i).Cross(b.Axes.at(j)), a, b) {
				return false
			}
		}
	}
	return true
}

// Helper function to check if there is a separating plane in between the selected axes
// reference: https://gamedev.stackexchange.com/questions/112883/simple-3d-obb-collision-directx9-c
func separatingPlaneTest(positionDelta, plane r3.Vector, a, b *Box) bool {
	return math.Abs(positionDelta.Dot(plane)) > (math.Abs(a.Axes.X.Mul(a.HalfSize.X).Dot(plane)) +
		math.Abs(a.Axes.Y.Mul(a.HalfSize.Y).Dot(plane)) +
		math.Abs(a.Axes.Z.Mul(a.HalfSize.Z).Dot(plane)) +
		math.Abs(b.Axes.X.Mul(b.HalfSize.X).Dot(plane)) +
		math.Abs(b.Axes.Y.Mul(b.HalfSize.Y).Dot(plane)) +
		math.Abs(b.Axes.Z.Mul(b.HalfSize.Z).Dot(plane)))
}

// Sphere is a ball around a center point.
type Sphere struct {
	Position r3.Vector
	Radius   float64
	label    string
}

// NewSphere returns a sphere of radius r at center.
func NewSphere(center r3.Vector, r float64, label string) *Sphere {
	return &Sphere{Position: center, Radius: r, label: label}
}

// Center returns the center of the sphere.
func (s *Sphere) Center() r3.Vector {
	return s.Position
}

// Label returns the name of the sphere.
func (s *Sphere) Label() string {
	return s.label
}

// Raycast intersects the ray with the sphere surface.
func (s *Sphere) Raycast(origin, direction r3.Vector, maxDistance float64) (float64, bool) {
	t, ok := raySphere(origin, direction, s.Position, s.Radius)
	if !ok || t > maxDistance {
		return 0, false
	}
	return t, true
}

// raySphere returns the entry distance of a normalized ray into a sphere.
func raySphere(origin, direction, center r3.Vector, r float64) (float64, bool) {
	oc := origin.Sub(center)
	c := oc.Norm2() - r*r
	if c < 0 {
		return 0, false
	}
	b := oc.Dot(direction)
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Capsule is the set of points within Radius of the segment from A to B.
type Capsule struct {
	A, B   r3.Vector
	Radius float64
	label  string
}

// NewCapsule returns a capsule of total length length (caps included) centered on pose and
// running along the pose's local Z axis.
func NewCapsule(center spatialmath.Pose, radius, length float64, label string) *Capsule {
	half := math.Max(length/2-radius, 0)
	axis := spatialmath.RotateVector(center.Orientation().Quaternion(), r3.Vector{Z: 1})
	c := center.Point()
	return &Capsule{A: c.Sub(axis.Mul(half)), B: c.Add(axis.Mul(half)), Radius: radius, label: label}
}

// Center returns the midpoint of the capsule's segment.
func (c *Capsule) Center() r3.Vector {
	return c.A.Add(c.B).Mul(0.5)
}

// Label returns the name of the capsule.
func (c *Capsule) Label() string {
	return c.label
}

// Raycast intersects the ray with the cylindrical body and both end caps, keeping the closest.
func (c *Capsule) Raycast(origin, direction r3.Vector, maxDistance float64) (float64, bool) {
	seg := c.B.Sub(c.A)
	segLen := seg.Norm()
	if segLen < 1e-12 {
		return (&Sphere{Position: c.A, Radius: c.Radius}).Raycast(origin, direction, maxDistance)
	}
	if distanceToSegment(origin, c.A, c.B) < c.Radius {
		return 0, false
	}

	axis := seg.Mul(1 / segLen)
	best, found := math.Inf(1), false

	rel := origin.Sub(c.A)
	dp := direction.Sub(axis.Mul(direction.Dot(axis)))
	op := rel.Sub(axis.Mul(rel.Dot(axis)))
	a := dp.Norm2()
	if a > 1e-12 {
		b := op.Dot(dp)
		cc := op.Norm2() - c.Radius*c.Radius
		if disc := b*b - a*cc; disc >= 0 {
			t := (-b - math.Sqrt(disc)) / a
			s := rel.Add(direction.Mul(t)).Dot(axis)
			if t >= 0 && s >= 0 && s <= segLen {
				best, found = t, true
			}
		}
	}
	for _, end := range []r3.Vector{c.A, c.B} {
		if t, ok := raySphere(origin, direction, end, c.Radius); ok && t < best {
			best, found = t, true
		}
	}
	if !found || best > maxDistance {
		return 0, false
	}
	return best, true
}

func distanceToSegment(pt, a, b r3.Vector) float64 {
	ab := b.Sub(a)
	t := pt.Sub(a).Dot(ab) / ab.Norm2()
	t = math.Max(0, math.Min(1, t))
	return pt.Distance(a.Add(ab.Mul(t)))
}
