package app

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/loader"
	"github.com/Faultbox/showroom/internal/engine/material"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/showroom"
)

type recordingState struct {
	name  string
	log   *[]string
	enter error
}

func (s *recordingState) Name() string { return s.name }

func (s *recordingState) Enter() error {
	*s.log = append(*s.log, s.name+":enter")
	return s.enter
}

func (s *recordingState) Exit() error {
	*s.log = append(*s.log, s.name+":exit")
	return nil
}

func (s *recordingState) Update(time.Duration) error {
	*s.log = append(*s.log, s.name+":update")
	return nil
}

func (s *recordingState) Render() error {
	*s.log = append(*s.log, s.name+":render")
	return nil
}

func (s *recordingState) HandleEvent(input.Event) error {
	*s.log = append(*s.log, s.name+":event")
	return nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestManagerTransitions(t *testing.T) {
	var log []string
	m := NewManager()

	if err := m.Update(0); err != nil {
		t.Fatalf("update without state: %v", err)
	}

	m.Change(&recordingState{name: "loading", log: &log})
	if m.Current() != nil {
		t.Error("expected change to wait for the next update")
	}
	m.Update(0)
	m.HandleEvent(input.Event{})
	m.Render()

	m.Change(&recordingState{name: "viewing", log: &log})
	m.Update(0)
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := []string{
		"loading:enter", "loading:update", "loading:event", "loading:render",
		"loading:exit", "viewing:enter", "viewing:update",
		"viewing:exit",
	}
	if !equal(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
	if m.Current() != nil {
		t.Error("expected no current state after close")
	}
}

func TestManagerEnterError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	m := NewManager()
	m.Change(&recordingState{name: "broken", log: &log, enter: boom})

	if err := m.Update(0); !errors.Is(err, boom) {
		t.Errorf("expected enter error, got %v", err)
	}
}

func carResult() loader.Result {
	root := scene.NewNode("Car")
	box := func() *scene.Geometry {
		return scene.Box(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	}
	root.Add(scene.NewMesh("Driver-DoorExterior-Panel", box(), material.NewStandard()))
	root.Add(scene.NewMesh("hazard", box(), material.NewStandard()))
	return loader.Result{Path: "car.glb", Asset: &loader.Asset{Root: root}}
}

func TestBind(t *testing.T) {
	root, table := bind(carResult(), showroom.DefaultCatalog())

	if root.Name != "Car" {
		t.Errorf("expected the loaded root, got %q", root.Name)
	}
	if got := len(table.Interactive()); got != 2 {
		t.Errorf("expected 2 interactive nodes, got %d", got)
	}
	if table.First(showroom.RoleDriverDoor) == nil {
		t.Error("expected the door to be bound")
	}
}

func TestBindFailure(t *testing.T) {
	tests := []struct {
		name string
		res  loader.Result
		cat  showroom.Catalog
	}{
		{"load error", loader.Result{Path: "car.glb", Err: errors.New("no such file")}, showroom.DefaultCatalog()},
		{"no asset", loader.Result{Path: "car.glb"}, showroom.DefaultCatalog()},
		{"bad catalog", carResult(), showroom.Catalog{Version: 1, Rules: []showroom.Rule{{Role: showroom.RoleBody}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, table := bind(tt.res, tt.cat)
			if root == nil {
				t.Fatal("expected a root to render")
			}
			if !table.Empty() {
				t.Error("expected an empty table")
			}
		})
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := config.Default().Interaction
	opts, err := sessionOptions(cfg)
	if err != nil {
		t.Fatalf("sessionOptions: %v", err)
	}
	if opts != showroom.DefaultOptions() {
		t.Errorf("expected default config to match default options, got %+v", opts)
	}

	cfg.HazardColor = "orange"
	if _, err := sessionOptions(cfg); err == nil {
		t.Error("expected error for a bad hazard color")
	}
}

func TestRendererConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Bloom.Strength = 1.5
	rc := rendererConfig(cfg, 2560, 1440)

	if rc.Width != 2560 || rc.Height != 1440 {
		t.Errorf("expected drawable size, got %dx%d", rc.Width, rc.Height)
	}
	if rc.Bloom.Strength != 1.5 {
		t.Errorf("expected bloom strength 1.5, got %v", rc.Bloom.Strength)
	}
	if rc.ClearColor != (mgl32.Vec3{}) {
		t.Errorf("expected black clear color, got %v", rc.ClearColor)
	}
}

func TestNewCamera(t *testing.T) {
	cam, controls := newCamera(config.Default().Camera, 1280, 720)

	if cam.Position != (mgl32.Vec3{10, 5, 0}) {
		t.Errorf("expected start position (10,5,0), got %v", cam.Position)
	}
	if cam.FOV != 50 {
		t.Errorf("expected fov 50, got %v", cam.FOV)
	}
	if controls.MinDistance != 1 || controls.MaxDistance != 20 {
		t.Errorf("expected distance 1..20, got %v..%v", controls.MinDistance, controls.MaxDistance)
	}
	if !controls.EnableDamping || controls.DampingFactor != 0.05 {
		t.Errorf("expected damping 0.05, got %v", controls.DampingFactor)
	}
	if fwd := cam.Forward(); fwd.Dot(mgl32.Vec3{-10, -5, 0}.Normalize()) < 0.999 {
		t.Errorf("expected camera looking at the origin, got %v", fwd)
	}
}

func TestRemoveSpots(t *testing.T) {
	a, b, c := &lighting.SpotLight{Name: "a"}, &lighting.SpotLight{Name: "b"}, &lighting.SpotLight{Name: "c"}
	got := removeSpots([]*lighting.SpotLight{a, b, c}, []*lighting.SpotLight{b})

	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("expected [a c], got %v", got)
	}
}
