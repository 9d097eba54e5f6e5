package math

import "github.com/go-gl/mathgl/mgl32"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// LerpVec3 performs linear interpolation between two 3D vectors.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
	}
}

// EaseLinear returns t unchanged.
func EaseLinear(t float32) float32 {
	return t
}

// EaseOutQuad decelerates towards the end (1 - (1-t)^2).
func EaseOutQuad(t float32) float32 {
	t = Clamp(t, 0, 1)
	inv := 1 - t
	return 1 - inv*inv
}

// NearVec3 reports whether every component of a and b differs by at most eps.
func NearVec3(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}
