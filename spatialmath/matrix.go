package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// QuatToMgl converts a gonum quaternion to its mathgl equivalent.
func QuatToMgl(q quat.Number) mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

// VecToMgl converts an r3 vector to its mathgl equivalent.
func VecToMgl(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// MglToVec converts a mathgl vector to an r3 vector.
func MglToVec(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// TRS returns the homogeneous matrix that scales, then rotates by q, then translates to pos.
func TRS(pos r3.Vector, q quat.Number, scale r3.Vector) mgl64.Mat4 {
	t := mgl64.Translate3D(pos.X, pos.Y, pos.Z)
	r := QuatToMgl(Normalize(q)).Mat4()
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return t.Mul4(r).Mul4(s)
}

// TransformByMatrix applies a homogeneous matrix to a point.
func TransformByMatrix(m mgl64.Mat4, pt r3.Vector) r3.Vector {
	return MglToVec(mgl64.TransformCoordinate(VecToMgl(pt), m))
}

// MglToQuat converts a mathgl quaternion to its gonum equivalent.
func MglToQuat(q mgl64.Quat) quat.Number {
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}
