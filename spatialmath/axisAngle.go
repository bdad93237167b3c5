package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// R4AA is a rotation of Theta radians about the axis (RX, RY, RZ). The axis need not be
// normalized.
type R4AA struct {
	Theta float64 `json:"th" mapstructure:"th"`
	RX    float64 `json:"x" mapstructure:"x"`
	RY    float64 `json:"y" mapstructure:"y"`
	RZ    float64 `json:"z" mapstructure:"z"`
}

// NewR4AA creates an empty R4AA struct.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// AxisAngles returns the orientation in axis angle representation.
func (r4 *R4AA) AxisAngles() *R4AA {
	return r4
}

// Quaternion returns orientation in quaternion representation.
func (r4 *R4AA) Quaternion() quat.Number {
	return r4.ToQuat()
}

// EulerAngles returns orientation in Euler angle representation.
func (r4 *R4AA) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(r4.Quaternion())
}

// ToR3 converts an R4 angle axis to R3.
func (r4 *R4AA) ToR3() r3.Vector {
	return r3.Vector{X: r4.RX * r4.Theta, Y: r4.RY * r4.Theta, Z: r4.RZ * r4.Theta}
}

// ToQuat converts an R4 axis angle to a unit quaternion. A zero axis yields the identity.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/angleToQuaternion/index.htm
func (r4 *R4AA) ToQuat() quat.Number {
	if r4.RX == 0 && r4.RY == 0 && r4.RZ == 0 {
		return quat.Number{Real: 1}
	}
	sinA := math.Sin(r4.Theta / 2)
	// Ensure that point xyz is on the unit sphere
	r4.Normalize()

	// Get the unit-sphere components
	ax := r4.RX * sinA
	ay := r4.RY * sinA
	az := r4.RZ * sinA
	w := math.Cos(r4.Theta / 2)
	return quat.Number{Real: w, Imag: ax, Jmag: ay, Kmag: az}
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere.
// A zero axis is left untouched.
func (r4 *R4AA) Normalize() {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0.0 {
		return
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
}

// R3ToR4 converts an R3 angle axis to R4.
func R3ToR4(aa r3.Vector) *R4AA {
	theta := aa.Norm()
	if theta == 0 {
		return NewR4AA()
	}
	return &R4AA{theta, aa.X / theta, aa.Y / theta, aa.Z / theta}
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{angle, 0, 0, 1}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}
