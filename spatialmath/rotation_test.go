package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestQuatFromToRotation(t *testing.T) {
	cases := []struct {
		from, to r3.Vector
	}{
		{r3.Vector{X: 1}, r3.Vector{Y: 1}},
		{r3.Vector{X: 1, Y: 1}, r3.Vector{Z: -3}},
		{r3.Vector{X: 2}, r3.Vector{X: 5}},
		{r3.Vector{X: 1}, r3.Vector{X: -1}},
		{r3.Vector{Y: 1, Z: 1}, r3.Vector{Y: -1, Z: -1}},
	}
	for _, c := range cases {
		q := QuatFromToRotation(c.from, c.to)
		test.That(t, quat.Abs(q), test.ShouldAlmostEqual, 1.)
		got := RotateVector(q, c.from.Normalize())
		want := c.to.Normalize()
		test.That(t, got.X, test.ShouldAlmostEqual, want.X)
		test.That(t, got.Y, test.ShouldAlmostEqual, want.Y)
		test.That(t, got.Z, test.ShouldAlmostEqual, want.Z)
	}

	test.That(t, QuatFromToRotation(r3.Vector{}, r3.Vector{X: 1}), test.ShouldResemble, quat.Number{Real: 1})
}

func TestRotateVector(t *testing.T) {
	q := QuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2)
	v := RotateVector(q, r3.Vector{X: 2})
	test.That(t, v.X, test.ShouldAlmostEqual, 0.)
	test.That(t, v.Y, test.ShouldAlmostEqual, 2.)
	test.That(t, v.Z, test.ShouldAlmostEqual, 0.)

	inv := RotateVector(QuatInverse(q), v)
	test.That(t, inv.X, test.ShouldAlmostEqual, 2.)
	test.That(t, inv.Y, test.ShouldAlmostEqual, 0.)
}

func TestSignedAngle(t *testing.T) {
	up := r3.Vector{Z: 1}
	test.That(t, SignedAngle(r3.Vector{X: 1}, r3.Vector{Y: 1}, up), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, SignedAngle(r3.Vector{Y: 1}, r3.Vector{X: 1}, up), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, SignedAngle(r3.Vector{X: 1}, r3.Vector{X: 3}, up), test.ShouldAlmostEqual, 0.)
	test.That(t, SignedAngle(r3.Vector{}, r3.Vector{X: 3}, up), test.ShouldEqual, 0.)
	test.That(t, AngleBetween(r3.Vector{X: 1}, r3.Vector{X: -1}), test.ShouldAlmostEqual, math.Pi)
}

func TestQuaternionAlmostEqual(t *testing.T) {
	q := QuatFromAxisAngle(r3.Vector{X: 1, Y: 1}, 0.3)
	test.That(t, QuaternionAlmostEqual(q, Flip(q), 1e-9), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q, quat.Number{Real: 1}, 1e-3), test.ShouldBeFalse)
	test.That(t, Normalize(quat.Number{}), test.ShouldResemble, quat.Number{Real: 1})
}

func TestPlane(t *testing.T) {
	_, ok := NewPlane(r3.Vector{}, r3.Vector{})
	test.That(t, ok, test.ShouldBeFalse)

	p, ok := NewPlane(r3.Vector{Z: 4}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p.Normal(), test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, p.DistanceTo(r3.Vector{X: 3, Z: 3}), test.ShouldAlmostEqual, 2.)
	proj := p.ClosestPoint(r3.Vector{X: 3, Y: -2, Z: 7})
	test.That(t, proj.X, test.ShouldAlmostEqual, 3.)
	test.That(t, proj.Y, test.ShouldAlmostEqual, -2.)
	test.That(t, proj.Z, test.ShouldAlmostEqual, 1.)
}

func TestPoseCompose(t *testing.T) {
	a := NewPose(r3.Vector{X: 1}, &R4AA{Theta: math.Pi / 2, RZ: 1})
	b := NewPoseFromPoint(r3.Vector{X: 1})
	c := Compose(a, b)
	test.That(t, c.Point().X, test.ShouldAlmostEqual, 1.)
	test.That(t, c.Point().Y, test.ShouldAlmostEqual, 1.)
	test.That(t, c.Point().Z, test.ShouldAlmostEqual, 0.)

	ident := Compose(a, PoseInverse(a))
	test.That(t, PoseAlmostEqual(ident, NewZeroPose()), test.ShouldBeTrue)

	pt := TransformPoint(a, r3.Vector{Y: 2})
	test.That(t, pt.X, test.ShouldAlmostEqual, -1.)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 0.)
}

func TestTRS(t *testing.T) {
	m := TRS(r3.Vector{X: 1, Y: 2, Z: 3}, QuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2), r3.Vector{X: 2, Y: 2, Z: 2})
	pt := TransformByMatrix(m, r3.Vector{X: 1})
	test.That(t, pt.X, test.ShouldAlmostEqual, 1.)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 4.)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 3.)
}
