// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// NDCToRay converts normalized device coordinates (-1..1, Y up) into a
// world-space ray. invViewProj is the inverse of the view-projection matrix.
func NDCToRay(ndc mgl32.Vec2, invViewProj mgl32.Mat4) Ray {
	// Unproject near and far points
	nearWorld := invViewProj.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], -1.0, 1.0})
	farWorld := invViewProj.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 1.0, 1.0})

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld = nearWorld.Mul(1 / nearWorld[3])
	}
	if farWorld[3] != 0 {
		farWorld = farWorld.Mul(1 / farWorld[3])
	}

	origin := nearWorld.Vec3()
	dir := farWorld.Vec3().Sub(origin)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	return Ray{Origin: origin, Direction: dir}
}

// ScreenToRay converts pixel coordinates to a world-space ray.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndc := mgl32.Vec2{
		2.0*screenX/viewportW - 1.0,
		1.0 - 2.0*screenY/viewportH, // Flip Y
	}
	return NDCToRay(ndc, invViewProj)
}

// Transform returns the ray moved by m. The direction is not renormalized,
// so distances along the result are measured in the original units.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	origin := mgl32.TransformCoordinate(r.Origin, m)
	tip := mgl32.TransformCoordinate(r.Origin.Add(r.Direction), m)
	return Ray{Origin: origin, Direction: tip.Sub(origin)}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box scene.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] != 0 {
			t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
			t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
			return 0, false
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle tests the ray against triangle a, b, c using the
// Möller–Trumbore algorithm. Both faces count as hits.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t float32, hit bool) {
	const epsilon = 1e-7

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	h := r.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -epsilon && det < epsilon {
		return 0, false // Ray is parallel to triangle
	}

	f := 1.0 / det
	s := r.Origin.Sub(a)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = f * edge2.Dot(q)
	if t <= epsilon {
		return 0, false // Behind the origin
	}
	return t, true
}
