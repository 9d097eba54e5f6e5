// Package material describes surface materials and their lifecycle.
package material

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind selects the shading model used by the renderer.
type Kind int

const (
	KindStandard Kind = iota
	KindPhysical
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindPhysical:
		return "physical"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NoTexture marks a material without a base color texture.
const NoTexture = -1

// Material holds the surface parameters of a mesh.
// Materials are shared by pointer; identity matters when restoring.
type Material struct {
	Name string
	Kind Kind

	Color             mgl32.Vec3
	Emissive          mgl32.Vec3
	EmissiveIntensity float32
	Roughness         float32
	Metalness         float32
	Opacity           float32
	Transparent       bool
	Texture           int // index into the asset's texture table, NoTexture if none

	// Physical extras
	Clearcoat          float32
	ClearcoatRoughness float32
	Reflectivity       float32
	EnvMapIntensity    float32
	IOR                float32

	DoubleSided bool
	DepthWrite  bool

	// Version is bumped on every change the renderer must re-upload.
	Version  uint32
	disposed bool
}

// NewStandard creates a standard material with default parameters.
func NewStandard() *Material {
	return &Material{
		Kind:              KindStandard,
		Color:             mgl32.Vec3{1, 1, 1},
		EmissiveIntensity: 1,
		Roughness:         1,
		Metalness:         0,
		Opacity:           1,
		Texture:           NoTexture,
		EnvMapIntensity:   1,
		IOR:               1.5,
		DepthWrite:        true,
	}
}

// NewPhysical creates a physical material with default parameters.
func NewPhysical() *Material {
	m := NewStandard()
	m.Kind = KindPhysical
	m.Reflectivity = 0.5
	return m
}

// Clone returns an independent copy. The copy is never disposed.
func (m *Material) Clone() *Material {
	c := *m
	c.disposed = false
	return &c
}

// SetEmissive changes the emissive color and intensity.
func (m *Material) SetEmissive(color mgl32.Vec3, intensity float32) {
	m.Emissive = color
	m.EmissiveIntensity = intensity
	m.NeedsUpdate()
}

// NeedsUpdate flags the material for re-upload.
func (m *Material) NeedsUpdate() {
	m.Version++
}

// Dispose releases the material. Disposing twice is a no-op.
func (m *Material) Dispose() {
	m.disposed = true
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m.disposed
}

// Hex converts an sRGB 0xRRGGBB color into linear [0,1] components.
func Hex(rgb uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		SRGBToLinear(uint8(rgb >> 16)),
		SRGBToLinear(uint8(rgb >> 8)),
		SRGBToLinear(uint8(rgb)),
	}
}

// SRGBToLinear decodes one 8-bit sRGB channel.
func SRGBToLinear(c uint8) float32 {
	v := float64(c) / 255
	if v < 0.04045 {
		return float32(v / 12.92)
	}
	return float32(math.Pow((v+0.055)/1.055, 2.4))
}
