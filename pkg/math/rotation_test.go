package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestQuatFromEulerXYZIdentity(t *testing.T) {
	q := QuatFromEulerXYZ(mgl32.Vec3{})
	if q.W != 1 || q.V != (mgl32.Vec3{}) {
		t.Errorf("zero euler should give identity quaternion, got %v", q)
	}
}

func TestQuatFromEulerXYZSingleAxis(t *testing.T) {
	// 90 degrees around Z turns +X into +Y
	q := QuatFromEulerXYZ(mgl32.Vec3{0, 0, DegToRad(90)})
	got := q.Rotate(mgl32.Vec3{1, 0, 0})
	if !NearVec3(got, mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("expected +Y, got %v", got)
	}

	// 90 degrees around X turns +Y into +Z
	q = QuatFromEulerXYZ(mgl32.Vec3{DegToRad(90), 0, 0})
	got = q.Rotate(mgl32.Vec3{0, 1, 0})
	if !NearVec3(got, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("expected +Z, got %v", got)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	tests := []mgl32.Vec3{
		{0, 0, 0},
		{0.3, -0.2, 0.9},
		{-1.2, 0.5, -2.5},
		{0, 0, DegToRad(50)},
	}

	for _, e := range tests {
		q := QuatFromEulerXYZ(e)
		back := EulerXYZFromQuat(q)
		if !NearVec3(back, e, 1e-4) {
			t.Errorf("round trip of %v gave %v", e, back)
		}
	}
}

func TestDegRad(t *testing.T) {
	if math.Abs(float64(DegToRad(180)-math.Pi)) > 1e-6 {
		t.Errorf("DegToRad(180): expected pi, got %v", DegToRad(180))
	}
	if math.Abs(float64(RadToDeg(DegToRad(50))-50)) > 1e-4 {
		t.Errorf("RadToDeg(DegToRad(50)): got %v", RadToDeg(DegToRad(50)))
	}
}

func TestForward(t *testing.T) {
	q := QuatFromEulerXYZ(mgl32.Vec3{DegToRad(-90), 0, 0})
	fwd := Forward(q, mgl32.Vec3{0, 1, 0})
	if !NearVec3(fwd, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("expected -Z, got %v", fwd)
	}
}
