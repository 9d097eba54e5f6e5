package shadow

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

// DirectionalMatrix fits an orthographic light frustum around bounds.
// toLight is the direction towards the light.
func DirectionalMatrix(toLight mgl32.Vec3, bounds scene.Bounds) mgl32.Mat4 {
	if bounds.IsEmpty() {
		bounds = scene.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	}
	center := bounds.Center()
	radius := bounds.Size().Len() / 2
	if radius < 1e-3 {
		radius = 1
	}
	dir := toLight.Normalize()

	// Far enough back to see the whole box
	distance := radius * 2
	eye := center.Add(dir.Mul(distance))
	view := mgl32.LookAtV(eye, center, upFor(dir))

	half := radius * 1.1
	far := distance + half
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, far)
	return proj.Mul4(view)
}

// SpotMatrix returns the perspective light matrix of a spot light with
// the given half-angle in radians.
func SpotMatrix(position, target mgl32.Vec3, angle, near, far float32) mgl32.Mat4 {
	dir := target.Sub(position)
	if dir.Len() < 1e-6 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	view := mgl32.LookAtV(position, position.Add(dir), upFor(dir.Normalize()))
	proj := mgl32.Perspective(2*angle, 1, near, far)
	return proj.Mul4(view)
}

// upFor picks an up vector that is not parallel to dir.
func upFor(dir mgl32.Vec3) mgl32.Vec3 {
	if abs32(dir[1]) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
