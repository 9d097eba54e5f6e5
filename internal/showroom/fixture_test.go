package showroom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/material"
	"github.com/Faultbox/showroom/internal/engine/scene"
	smath "github.com/Faultbox/showroom/pkg/math"
)

var surface = Rect{Width: 800, Height: 800}

// car is a small stand-in for the showroom asset.
type car struct {
	root        *scene.Node
	body        *scene.Node
	door        *scene.Node
	wheel       *scene.Node
	lightSwitch *scene.Node
	hazard      *scene.Node
	driverHL    *scene.Node
	passengerHL *scene.Node
	turnFront   *scene.Node
	turnRear    *scene.Node
}

func box(name string, at mgl32.Vec3, half float32) *scene.Node {
	h := mgl32.Vec3{half, half, half}
	n := scene.NewMesh(name, scene.Box(h.Mul(-1), h), material.NewStandard())
	n.Material.Name = name + "-mat"
	n.Position = at
	return n
}

// newCar builds the fixture. withSwitch controls whether the headlight
// switch exists.
func newCar(withSwitch bool) *car {
	c := &car{root: scene.NewNode("Car")}

	c.body = box("Body", mgl32.Vec3{-3, -3, 0}, 0.5)
	c.door = scene.NewMesh("Driver-DoorExterior-Panel",
		scene.Box(mgl32.Vec3{-1, -1, -0.1}, mgl32.Vec3{1, 1, 0.1}), material.NewStandard())
	c.wheel = box("Wheel", mgl32.Vec3{0, 0, 3}, 0.5)
	c.lightSwitch = box("headlight-switch_001", mgl32.Vec3{3, 0, 0}, 0.25)
	c.hazard = box("hazard", mgl32.Vec3{-3, 0, 0}, 0.25)
	c.driverHL = box("Driver-Headlight_L", mgl32.Vec3{0, 3, 0}, 0.25)
	c.passengerHL = box("Passenger-Headlight_R", mgl32.Vec3{0, -3, 0}, 0.25)

	c.turnFront = box("turn_signal_FL", mgl32.Vec3{3, 3, 0}, 0.25)
	c.turnFront.Material.SetEmissive(mgl32.Vec3{0.1, 0, 0}, 1)
	c.turnRear = box("TurnSignal_RR", mgl32.Vec3{-3, 3, 0}, 0.25)
	c.turnRear.Material.SetEmissive(mgl32.Vec3{0, 0.2, 0}, 0.5)

	c.root.Add(c.body)
	c.root.Add(c.door)
	c.root.Add(c.wheel)
	if withSwitch {
		c.root.Add(c.lightSwitch)
	}
	c.root.Add(c.hazard)
	c.root.Add(c.driverHL)
	c.root.Add(c.passengerHL)
	c.root.Add(c.turnFront)
	c.root.Add(c.turnRear)
	return c
}

func resolve(t *testing.T, c *car) *Table {
	t.Helper()
	table, err := Resolve(c.root, DefaultCatalog(), zap.NewNop())
	require.NoError(t, err)
	return table
}

func newTestSession(t *testing.T, withSwitch bool) (*car, *Session) {
	t.Helper()
	c := newCar(withSwitch)
	s := NewSession(resolve(t, c), DefaultOptions())
	t.Cleanup(s.Close)
	return c, s
}

func newTestCamera() *camera.Perspective {
	cam := camera.NewPerspective(50, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.LookAt(mgl32.Vec3{})
	return cam
}

// clientOf projects a world point to client coordinates on surface.
func clientOf(cam *camera.Perspective, p mgl32.Vec3) (float32, float32) {
	ndc := mgl32.TransformCoordinate(p, cam.ViewProjection())
	x := (ndc[0] + 1) / 2 * surface.Width
	y := (1 - ndc[1]) / 2 * surface.Height
	return surface.X + x, surface.Y + y
}

// click hits n slightly off its center so the ray never runs along a
// triangle edge.
func click(s *Session, cam *camera.Perspective, n *scene.Node) Role {
	x, y := clientOf(cam, n.WorldPosition().Add(mgl32.Vec3{0.05, 0.02, 0}))
	return s.HandleClick(x, y, surface, cam)
}

func assertVec(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, smath.NearVec3(want, got, 1e-4), "expected %v, got %v %v", want, got, msgAndArgs)
}
