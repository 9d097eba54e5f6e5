// Package lighting provides the light sources of the viewer scene.
package lighting

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxSpotLights is the maximum number of spot lights supported in shaders.
const MaxSpotLights = 4

// ShadowConfig holds shadow map settings for a light.
type ShadowConfig struct {
	MapSize int
	Near    float32
	Far     float32
}

// SpotLight is a cone light aimed at a target point.
type SpotLight struct {
	Name      string
	Color     mgl32.Vec3
	Intensity float32
	Distance  float32 // Cutoff range, 0 for infinite
	Angle     float32 // Cone half-angle in radians
	Penumbra  float32 // 0..1 soft edge fraction
	Decay     float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Visible  bool

	CastShadow bool
	Shadow     ShadowConfig
}

// NewSoftSpotLight creates the soft white cone used to simulate headlights.
// It starts hidden.
func NewSoftSpotLight(name string) *SpotLight {
	return &SpotLight{
		Name:       name,
		Color:      mgl32.Vec3{1, 1, 1},
		Intensity:  100,
		Distance:   10,
		Angle:      gomath.Pi / 4,
		Penumbra:   0.7,
		Decay:      2,
		Visible:    false,
		CastShadow: true,
		Shadow: ShadowConfig{
			MapSize: 1024,
			Near:    0.1,
			Far:     20,
		},
	}
}

// Direction returns the normalized aim direction.
func (l *SpotLight) Direction() mgl32.Vec3 {
	d := l.Target.Sub(l.Position)
	if d.Len() < 1e-6 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// Follow places the light backOffset behind origin along forward and aims
// it reach units further ahead.
func (l *SpotLight) Follow(origin, forward mgl32.Vec3, backOffset, reach float32) {
	l.Position = origin.Sub(forward.Mul(backOffset))
	l.Target = l.Position.Add(forward.Mul(reach))
}

// SpotLightBuffer holds spot lights for GPU upload.
type SpotLightBuffer struct {
	Lights []*SpotLight
	Count  int
}

// NewSpotLightBuffer creates an empty spot light buffer.
func NewSpotLightBuffer() *SpotLightBuffer {
	return &SpotLightBuffer{
		Lights: make([]*SpotLight, 0, MaxSpotLights),
	}
}

// Clear removes all lights from the buffer.
func (b *SpotLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// Collect replaces the buffer contents with the visible lights.
// Truncates to MaxSpotLights if necessary.
func (b *SpotLightBuffer) Collect(lights []*SpotLight) {
	b.Clear()
	for _, l := range lights {
		if l == nil || !l.Visible {
			continue
		}
		if b.Count >= MaxSpotLights {
			break
		}
		b.Lights = append(b.Lights, l)
		b.Count++
	}
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *SpotLightBuffer) Positions() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, l := range b.Lights {
		copy(result[i*3:], l.Position[:])
	}
	return result
}

// Directions returns aim directions as a flat float32 slice.
func (b *SpotLightBuffer) Directions() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, l := range b.Lights {
		d := l.Direction()
		copy(result[i*3:], d[:])
	}
	return result
}

// Colors returns color * intensity as a flat float32 slice.
func (b *SpotLightBuffer) Colors() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, l := range b.Lights {
		c := l.Color.Mul(l.Intensity)
		copy(result[i*3:], c[:])
	}
	return result
}

// Cones returns [cos(outer), cos(inner), distance, decay] per light.
func (b *SpotLightBuffer) Cones() []float32 {
	result := make([]float32, MaxSpotLights*4)
	for i, l := range b.Lights {
		outer := l.Angle
		inner := outer * (1 - l.Penumbra)
		result[i*4+0] = float32(gomath.Cos(float64(outer)))
		result[i*4+1] = float32(gomath.Cos(float64(inner)))
		result[i*4+2] = l.Distance
		result[i*4+3] = l.Decay
	}
	return result
}
