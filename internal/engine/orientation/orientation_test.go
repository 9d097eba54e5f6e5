package orientation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/camera"
	smath "github.com/Faultbox/showroom/pkg/math"
)

type fakeRequester struct {
	err   error
	calls int
}

func (f *fakeRequester) RequestPermission(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeNotifier struct {
	notices []string
}

func (f *fakeNotifier) Notify(title, message string) {
	f.notices = append(f.notices, message)
}

func TestAnglesEuler(t *testing.T) {
	e := Angles{Alpha: 90, Beta: 45, Gamma: -30}.Euler()
	want := mgl32.Vec3{-math.Pi / 4, math.Pi / 2, -math.Pi / 6}
	if !smath.NearVec3(e, want, 1e-5) {
		t.Errorf("expected %v, got %v", want, e)
	}
}

func TestStartGranted(t *testing.T) {
	req := &fakeRequester{}
	note := &fakeNotifier{}
	c := NewController(req, note)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !c.Active() {
		t.Error("expected active controller")
	}
	if len(note.notices) != 0 {
		t.Errorf("expected no notice, got %v", note.notices)
	}

	// Starting again does not ask twice
	_ = c.Start(context.Background())
	if req.calls != 1 {
		t.Errorf("expected one permission request, got %d", req.calls)
	}
}

func TestStartDenied(t *testing.T) {
	tests := []struct {
		err    error
		notice string
	}{
		{ErrPermissionDenied, "Permission not granted for motion/orientation."},
		{fmt.Errorf("opening sensor 0: %w", ErrPermissionDenied), "Permission not granted for motion/orientation."},
		{ErrNoSensor, "Device orientation not supported or permission error."},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			note := &fakeNotifier{}
			c := NewController(&fakeRequester{err: tt.err}, note)

			err := c.Start(context.Background())
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
			if c.Active() {
				t.Error("controller should stay inactive")
			}
			if len(note.notices) != 1 || note.notices[0] != tt.notice {
				t.Errorf("expected notice %q, got %v", tt.notice, note.notices)
			}
		})
	}
}

func TestStartWithoutRequester(t *testing.T) {
	c := NewController(nil, nil)
	if err := c.Start(context.Background()); !errors.Is(err, ErrNoSensor) {
		t.Errorf("expected ErrNoSensor, got %v", err)
	}
}

func TestApplyToOverridesOrbit(t *testing.T) {
	cam := camera.NewPerspective(50, 1, 0.1, 1000)
	controls := camera.NewOrbitControls(cam)
	c := NewController(&fakeRequester{}, nil)

	// Inactive: readings ignored, controls enabled
	c.Update(Angles{Alpha: 10})
	c.ApplyTo(cam, controls)
	if !controls.Enabled {
		t.Error("controls should be enabled while inactive")
	}
	if _, ok := c.Latest(); ok {
		t.Error("readings before Start should be dropped")
	}

	_ = c.Start(context.Background())
	a := Angles{Alpha: 30, Beta: 20, Gamma: 10}
	c.Update(a)
	c.ApplyTo(cam, controls)

	if controls.Enabled {
		t.Error("controls should be disabled while active")
	}
	want := smath.QuatFromEulerXYZ(a.Euler())
	if !smath.NearVec3(cam.Orientation, want, 1e-5) {
		t.Errorf("expected orientation %v, got %v", want, cam.Orientation)
	}

	c.Stop()
	c.ApplyTo(cam, controls)
	if !controls.Enabled {
		t.Error("controls should be re-enabled after Stop")
	}
}

func TestIntegrator(t *testing.T) {
	g := NewIntegrator(Angles{}, 1)

	// First sample only sets the clock
	g.Add([3]float32{1, 1, 1}, 1000)
	if g.Angles() != (Angles{}) {
		t.Errorf("expected no change on first sample, got %+v", g.Angles())
	}

	// 0.5s at pi/2 rad/s is 45 degrees
	a := g.Add([3]float32{math.Pi / 2, math.Pi / 2, math.Pi / 2}, 1500)
	for name, v := range map[string]float32{"alpha": a.Alpha, "beta": a.Beta, "gamma": a.Gamma} {
		if math.Abs(float64(v-45)) > 1e-3 {
			t.Errorf("%s: expected 45, got %v", name, v)
		}
	}

	// Stale sample is ignored
	before := g.Angles()
	g.Add([3]float32{10, 10, 10}, 9000)
	if g.Angles() != before {
		t.Error("gap longer than a second should be ignored")
	}
}

func TestIntegratorLimits(t *testing.T) {
	g := NewIntegrator(Angles{Alpha: 170, Gamma: 80}, 1)
	g.Add([3]float32{}, 0)
	a := g.Add([3]float32{0, math.Pi / 2, math.Pi / 2}, 500)

	if math.Abs(float64(a.Alpha-(-145))) > 1e-3 {
		t.Errorf("expected alpha to wrap to -145, got %v", a.Alpha)
	}
	if a.Gamma != 90 {
		t.Errorf("expected gamma clamped to 90, got %v", a.Gamma)
	}
}

func TestWrap(t *testing.T) {
	cases := map[float32]float32{0: 0, 180: -180, -180: -180, 190: -170, -190: 170, 720: 0}
	for in, want := range cases {
		if got := wrap(in); math.Abs(float64(got-want)) > 1e-4 {
			t.Errorf("wrap(%v): expected %v, got %v", in, want, got)
		}
	}
}
