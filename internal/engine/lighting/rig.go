package lighting

import "github.com/go-gl/mathgl/mgl32"

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

// DirectionalLight shines from Position towards the origin.
type DirectionalLight struct {
	Color      mgl32.Vec3
	Intensity  float32
	Position   mgl32.Vec3
	CastShadow bool
}

// Direction returns the normalized direction the light travels in.
func (l DirectionalLight) Direction() mgl32.Vec3 {
	if l.Position.Len() < 1e-6 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Position.Mul(-1).Normalize()
}

// Rig is the static lighting of the showroom plus the dynamic spot lights.
type Rig struct {
	Ambient     AmbientLight
	Directional DirectionalLight
	Spots       []*SpotLight
}

// DefaultRig returns a soft white ambient and a key light above the car.
func DefaultRig() *Rig {
	return &Rig{
		Ambient: AmbientLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.5},
		Directional: DirectionalLight{
			Color:      mgl32.Vec3{1, 1, 1},
			Intensity:  1,
			Position:   mgl32.Vec3{5, 10, 7.5},
			CastShadow: true,
		},
	}
}

// AddSpot registers a spot light with the rig.
func (r *Rig) AddSpot(l *SpotLight) {
	r.Spots = append(r.Spots, l)
}
