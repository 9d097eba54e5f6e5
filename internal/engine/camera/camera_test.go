package camera

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
	smath "github.com/Faultbox/showroom/pkg/math"
)

func TestLookAtForward(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{10, 5, 0}
	c.LookAt(mgl32.Vec3{0, 0, 0})

	want := mgl32.Vec3{-10, -5, 0}.Normalize()
	if got := c.Forward(); !smath.NearVec3(got, want, 1e-4) {
		t.Errorf("expected forward %v, got %v", want, got)
	}
}

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{3, 4, 5}
	c.LookAt(mgl32.Vec3{0, 0, 0})

	eye := mgl32.TransformCoordinate(c.Position, c.ViewMatrix())
	if eye.Len() > 1e-4 {
		t.Errorf("expected eye at view origin, got %v", eye)
	}

	// The target sits straight ahead on -Z
	target := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, c.ViewMatrix())
	if gomath.Abs(float64(target[0])) > 1e-4 || gomath.Abs(float64(target[1])) > 1e-4 || target[2] >= 0 {
		t.Errorf("expected target on -Z axis, got %v", target)
	}
}

func TestResize(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Resize(1920, 1080)
	if gomath.Abs(float64(c.Aspect-1920.0/1080.0)) > 1e-6 {
		t.Errorf("unexpected aspect %v", c.Aspect)
	}

	c.Resize(0, 0)
	if gomath.Abs(float64(c.Aspect-1920.0/1080.0)) > 1e-6 {
		t.Error("zero size should not change aspect")
	}
}

func TestOrbitClampsDistance(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{0, 5, 100}
	o := NewOrbitControls(c)
	o.EnableDamping = false

	o.Update()
	if d := c.Position.Sub(o.Target).Len(); gomath.Abs(float64(d-o.MaxDistance)) > 1e-4 {
		t.Errorf("expected distance clamped to %v, got %v", o.MaxDistance, d)
	}

	for i := 0; i < 200; i++ {
		o.HandleZoom(1)
		o.Update()
	}
	if d := c.Position.Sub(o.Target).Len(); gomath.Abs(float64(d-o.MinDistance)) > 1e-4 {
		t.Errorf("expected distance clamped to %v, got %v", o.MinDistance, d)
	}
}

func TestOrbitStaysAboveGround(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{10, 5, 0}
	o := NewOrbitControls(c)
	o.EnableDamping = false

	// Drag far enough to push the camera under the target
	o.HandleDrag(0, -5000, 600)
	o.Update()

	if c.Position[1] < -1e-4 {
		t.Errorf("camera went below the polar limit: %v", c.Position)
	}
}

func TestOrbitDampingDecays(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{10, 5, 0}
	o := NewOrbitControls(c)

	o.HandleDrag(100, 0, 600)
	before := o.deltaTheta
	o.Update()
	if gomath.Abs(float64(o.deltaTheta)) >= gomath.Abs(float64(before)) {
		t.Errorf("expected damping to shrink pending rotation, %v -> %v", before, o.deltaTheta)
	}
}

func TestDisabledControlsIgnoreInput(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{10, 5, 0}
	o := NewOrbitControls(c)
	o.Enabled = false

	o.HandleDrag(100, 100, 600)
	o.HandleZoom(1)
	o.Update()

	if c.Position != (mgl32.Vec3{10, 5, 0}) {
		t.Errorf("disabled controls moved the camera to %v", c.Position)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewPerspective(50, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{10, 5, 0}
	o := NewOrbitControls(c)

	o.FitToBounds(scene.Bounds{Min: mgl32.Vec3{-2, 0, -1}, Max: mgl32.Vec3{2, 2, 1}})
	if o.Target != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected target at box center, got %v", o.Target)
	}

	o.FitToBounds(scene.EmptyBounds())
	if o.Target != (mgl32.Vec3{0, 1, 0}) {
		t.Error("empty bounds should not move the target")
	}
}
