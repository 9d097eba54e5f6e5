package material

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is a value copy of the parameters a material can lose while a
// toggle is active.
type Snapshot struct {
	Color             mgl32.Vec3
	Emissive          mgl32.Vec3
	EmissiveIntensity float32
	Roughness         float32
	Metalness         float32
	Opacity           float32
	Transparent       bool
	Texture           int
}

// Capture takes a snapshot of m.
func Capture(m *Material) Snapshot {
	return Snapshot{
		Color:             m.Color,
		Emissive:          m.Emissive,
		EmissiveIntensity: m.EmissiveIntensity,
		Roughness:         m.Roughness,
		Metalness:         m.Metalness,
		Opacity:           m.Opacity,
		Transparent:       m.Transparent,
		Texture:           m.Texture,
	}
}

// Apply writes every captured parameter back onto m.
func (s Snapshot) Apply(m *Material) {
	m.Color = s.Color
	m.Emissive = s.Emissive
	m.EmissiveIntensity = s.EmissiveIntensity
	m.Roughness = s.Roughness
	m.Metalness = s.Metalness
	m.Opacity = s.Opacity
	m.Transparent = s.Transparent
	m.Texture = s.Texture
	m.NeedsUpdate()
}

// ApplyEmissive restores only the emissive channel.
func (s Snapshot) ApplyEmissive(m *Material) {
	m.SetEmissive(s.Emissive, s.EmissiveIntensity)
}

// Matches reports whether m currently carries the captured parameters.
func (s Snapshot) Matches(m *Material) bool {
	return Capture(m) == s
}
