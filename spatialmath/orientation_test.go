package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis in all the representations
var (
	th    = math.Pi / 4.
	q45x  = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)} // in quaternion representation
	aa45x = &R4AA{th, 1., 0., 0.}                                         // in axis-angle representation
	ea45x = &EulerAngles{Roll: th, Pitch: 0, Yaw: 0}                      // in euler angle representation
)

func TestZeroOrientation(t *testing.T) {
	zero := NewZeroOrientation()
	test.That(t, zero.AxisAngles(), test.ShouldResemble, NewR4AA())
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, zero.EulerAngles(), test.ShouldResemble, NewEulerAngles())
}

func TestQuaternions(t *testing.T) {
	qq45x := quaternion(q45x)
	test.That(t, qq45x.AxisAngles().Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, qq45x.AxisAngles().RX, test.ShouldAlmostEqual, aa45x.RX)
	test.That(t, qq45x.AxisAngles().RY, test.ShouldAlmostEqual, aa45x.RY)
	test.That(t, qq45x.AxisAngles().RZ, test.ShouldAlmostEqual, aa45x.RZ)
	test.That(t, qq45x.EulerAngles().Roll, test.ShouldAlmostEqual, ea45x.Roll)
	test.That(t, qq45x.EulerAngles().Pitch, test.ShouldAlmostEqual, ea45x.Pitch)
	test.That(t, qq45x.EulerAngles().Yaw, test.ShouldAlmostEqual, ea45x.Yaw)
}

func TestEulerAngles(t *testing.T) {
	test.That(t, ea45x.Quaternion().Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, ea45x.Quaternion().Imag, test.ShouldAlmostEqual, q45x.Imag)
	test.That(t, ea45x.Quaternion().Jmag, test.ShouldAlmostEqual, q45x.Jmag)
	test.That(t, ea45x.Quaternion().Kmag, test.ShouldAlmostEqual, q45x.Kmag)
	test.That(t, ea45x.AxisAngles().Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, ea45x.AxisAngles().RX, test.ShouldAlmostEqual, aa45x.RX)
}

func TestAxisAngles(t *testing.T) {
	test.That(t, aa45x.Quaternion().Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, aa45x.Quaternion().Imag, test.ShouldAlmostEqual, q45x.Imag)
	test.That(t, aa45x.Quaternion().Jmag, test.ShouldAlmostEqual, q45x.Jmag)
	test.That(t, aa45x.Quaternion().Kmag, test.ShouldAlmostEqual, q45x.Kmag)
	test.That(t, aa45x.EulerAngles().Roll, test.ShouldAlmostEqual, ea45x.Roll)

	r3aa := aa45x.ToR3()
	test.That(t, r3aa.X, test.ShouldAlmostEqual, th)
	back := R3ToR4(r3aa)
	test.That(t, back.Theta, test.ShouldAlmostEqual, th)
	test.That(t, back.RX, test.ShouldAlmostEqual, 1.)

	// a zero axis cannot be normalized and degrades to no rotation
	test.That(t, (&R4AA{Theta: 1}).ToQuat(), test.ShouldResemble, quat.Number{Real: 1})
}

func TestOrientationBetween(t *testing.T) {
	o1 := NewZeroOrientation()
	o2 := &R4AA{Theta: math.Pi / 2, RZ: 1}
	between := OrientationBetween(o1, o2)
	test.That(t, OrientationAlmostEqual(between, o2), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(NewOrientationFromQuat(Flip(o2.Quaternion())), o2), test.ShouldBeTrue)
}
