package shadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

func inClip(p mgl32.Vec3) bool {
	for _, v := range p {
		if v < -1.0001 || v > 1.0001 {
			return false
		}
	}
	return true
}

func TestDirectionalMatrixCoversBounds(t *testing.T) {
	bounds := scene.Bounds{Min: mgl32.Vec3{-2, 0, -4}, Max: mgl32.Vec3{2, 1.5, 4}}
	m := DirectionalMatrix(mgl32.Vec3{5, 10, 7.5}, bounds)

	corners := []mgl32.Vec3{
		bounds.Min, bounds.Max,
		{bounds.Min[0], bounds.Max[1], bounds.Min[2]},
		{bounds.Max[0], bounds.Min[1], bounds.Max[2]},
	}
	for _, c := range corners {
		if p := mgl32.TransformCoordinate(c, m); !inClip(p) {
			t.Errorf("corner %v projects outside the shadow map: %v", c, p)
		}
	}
}

func TestDirectionalMatrixVerticalLight(t *testing.T) {
	bounds := scene.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	m := DirectionalMatrix(mgl32.Vec3{0, 1, 0}, bounds)
	if p := mgl32.TransformCoordinate(bounds.Center(), m); !inClip(p) {
		t.Errorf("center projects outside: %v", p)
	}
}

func TestDirectionalMatrixEmptyBounds(t *testing.T) {
	m := DirectionalMatrix(mgl32.Vec3{1, 1, 1}, scene.EmptyBounds())
	if p := mgl32.TransformCoordinate(mgl32.Vec3{}, m); !inClip(p) {
		t.Errorf("origin projects outside: %v", p)
	}
}

func TestSpotMatrixCentersTarget(t *testing.T) {
	pos := mgl32.Vec3{1, 0.5, 2}
	target := pos.Add(mgl32.Vec3{0, 0, -10})
	m := SpotMatrix(pos, target, 0.785, 0.1, 20)

	p := mgl32.TransformCoordinate(target, m)
	if abs32(p[0]) > 1e-4 || abs32(p[1]) > 1e-4 {
		t.Errorf("expected target at the center, got %v", p)
	}
	if !inClip(p) {
		t.Errorf("target within range should be inside the frustum, got %v", p)
	}

	behind := mgl32.TransformCoordinate(pos.Add(mgl32.Vec3{0, 0, 30}), m)
	if inClip(behind) {
		t.Errorf("point behind the light should be clipped, got %v", behind)
	}
}
