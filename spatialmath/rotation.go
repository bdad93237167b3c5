package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// vectors shorter than this are treated as having no direction.
const directionEpsilon = 1e-12

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Normalize scales a quaternion to unit length. The zero quaternion becomes the identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual reports whether two quaternions describe the same rotation within tol,
// treating q and -q as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	near := func(x, y quat.Number) bool {
		return math.Abs(x.Real-y.Real) < tol &&
			math.Abs(x.Imag-y.Imag) < tol &&
			math.Abs(x.Jmag-y.Jmag) < tol &&
			math.Abs(x.Kmag-y.Kmag) < tol
	}
	return near(a, b) || near(a, Flip(b))
}

// QuatInverse returns the multiplicative inverse of q.
func QuatInverse(q quat.Number) quat.Number {
	return quat.Inv(q)
}

// QuatFromAxisAngle returns the unit quaternion rotating theta radians about axis.
func QuatFromAxisAngle(axis r3.Vector, theta float64) quat.Number {
	aa := &R4AA{Theta: theta, RX: axis.X, RY: axis.Y, RZ: axis.Z}
	return aa.ToQuat()
}

// RotateVector applies the rotation q to v.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	q = Normalize(q)
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// QuatFromToRotation returns the shortest-arc rotation taking the direction of from onto the
// direction of to. Zero-length inputs give the identity.
func QuatFromToRotation(from, to r3.Vector) quat.Number {
	fromLen, toLen := from.Norm(), to.Norm()
	if fromLen < directionEpsilon || toLen < directionEpsilon {
		return quat.Number{Real: 1}
	}
	f := from.Mul(1 / fromLen)
	t := to.Mul(1 / toLen)
	dot := f.Dot(t)
	if dot < -1+1e-9 {
		// antiparallel: any axis orthogonal to f works
		axis := f.Ortho()
		return QuatFromAxisAngle(axis, math.Pi)
	}
	c := f.Cross(t)
	return Normalize(quat.Number{Real: 1 + dot, Imag: c.X, Jmag: c.Y, Kmag: c.Z})
}

// AngleBetween returns the unsigned angle in radians between two vectors, or zero if either has
// no direction.
func AngleBetween(from, to r3.Vector) float64 {
	denom := from.Norm() * to.Norm()
	if denom < directionEpsilon {
		return 0
	}
	cos := from.Dot(to) / denom
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// SignedAngle returns the angle in radians from `from` to `to`, signed by the handedness of the
// rotation about axis.
func SignedAngle(from, to, axis r3.Vector) float64 {
	angle := AngleBetween(from, to)
	if axis.Dot(from.Cross(to)) < 0 {
		return -angle
	}
	return angle
}
