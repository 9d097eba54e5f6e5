// Package math provides rotation and interpolation helpers on top of mgl32.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / math.Pi
}

// QuatFromEulerXYZ creates a quaternion from Euler angles (radians) applied
// in intrinsic X, Y, Z order. This is the order glTF authoring tools and the
// orientation sensors use.
func QuatFromEulerXYZ(e mgl32.Vec3) mgl32.Quat {
	c1, s1 := cosf(e[0]/2), sinf(e[0]/2)
	c2, s2 := cosf(e[1]/2), sinf(e[1]/2)
	c3, s3 := cosf(e[2]/2), sinf(e[2]/2)

	return mgl32.Quat{
		W: c1*c2*c3 - s1*s2*s3,
		V: mgl32.Vec3{
			s1*c2*c3 + c1*s2*s3,
			c1*s2*c3 - s1*c2*s3,
			c1*c2*s3 + s1*s2*c3,
		},
	}
}

// EulerXYZFromQuat is the inverse of QuatFromEulerXYZ.
// Near gimbal lock (|pitch| ~ 90deg) the Z angle is folded into X.
func EulerXYZFromQuat(q mgl32.Quat) mgl32.Vec3 {
	m := q.Normalize().Mat4()

	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	y := float32(math.Asin(float64(Clamp(m13, -1, 1))))
	if math.Abs(float64(m13)) < 0.9999999 {
		return mgl32.Vec3{atan2f(-m23, m33), y, atan2f(-m12, m11)}
	}
	return mgl32.Vec3{atan2f(m32, m22), y, 0}
}

// Forward rotates the local axis by q and returns the normalized result.
func Forward(q mgl32.Quat, localAxis mgl32.Vec3) mgl32.Vec3 {
	return q.Rotate(localAxis).Normalize()
}

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }

func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }

func atan2f(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }
