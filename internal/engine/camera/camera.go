// Package camera provides the viewer camera and its orbit controls.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	smath "github.com/Faultbox/showroom/pkg/math"
)

// Perspective is a perspective camera looking down its local -Z axis.
type Perspective struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat

	FOV    float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewPerspective creates a camera at the origin with identity orientation.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	return &Perspective{
		Orientation: mgl32.QuatIdent(),
		FOV:         fov,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
	}
}

// Resize updates the aspect ratio for a new viewport size.
func (c *Perspective) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// LookAt orients the camera towards target with +Y up.
func (c *Perspective) LookAt(target mgl32.Vec3) {
	if target.Sub(c.Position).Len() < 1e-6 {
		return
	}
	view := mgl32.LookAtV(c.Position, target, mgl32.Vec3{0, 1, 0})
	c.Orientation = mgl32.Mat4ToQuat(view.Inv()).Normalize()
}

// SetEuler sets the orientation from Euler XYZ angles in radians.
func (c *Perspective) SetEuler(e mgl32.Vec3) {
	c.Orientation = smath.QuatFromEulerXYZ(e)
}

// Forward returns the viewing direction in world space.
func (c *Perspective) Forward() mgl32.Vec3 {
	return smath.Forward(c.Orientation, mgl32.Vec3{0, 0, -1})
}

// ViewMatrix returns the world-to-camera transform.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	world := mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]).Mul4(c.Orientation.Mat4())
	return world.Inv()
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(smath.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// InverseViewProjection returns the matrix that unprojects NDC to world space.
func (c *Perspective) InverseViewProjection() mgl32.Mat4 {
	return c.ViewProjection().Inv()
}
