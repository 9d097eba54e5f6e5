package app

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/loader"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/showroom"
)

// ViewingState shows the bound model and routes input to the session and
// the camera.
type ViewingState struct {
	app     *App
	asset   *loader.Asset
	root    *scene.Node
	table   *showroom.Table
	session *showroom.Session
}

// NewViewingState creates the state for a bound scene. asset may be nil
// when loading failed.
func NewViewingState(app *App, asset *loader.Asset, root *scene.Node, table *showroom.Table) *ViewingState {
	return &ViewingState{app: app, asset: asset, root: root, table: table}
}

func (s *ViewingState) Name() string { return "viewing" }

// Enter starts the interaction session and frames the model.
func (s *ViewingState) Enter() error {
	s.session = showroom.NewSession(s.table, s.app.sessionOpts)
	for _, spot := range s.session.Spots() {
		s.app.rig.AddSpot(spot)
	}

	if s.asset != nil {
		s.app.renderer.SetTextures(s.asset.Textures)
	}
	s.app.controls.FitToBounds(s.root.WorldBounds())

	if s.app.cfg.Sensor.Enabled {
		s.toggleOrientation()
	}

	logger.Info("viewing",
		zap.String("session", s.session.ID().String()),
		zap.Int("interactive", len(s.table.Interactive())),
		zap.Int("meshes", len(s.table.Meshes())))
	return nil
}

// Exit tears the session down and detaches its lights.
func (s *ViewingState) Exit() error {
	if s.session == nil {
		return nil
	}
	s.session.Close()
	s.app.rig.Spots = removeSpots(s.app.rig.Spots, s.session.Spots())
	s.session = nil
	return nil
}

// Update runs the per-frame order: session animations and light sync,
// then the camera source.
func (s *ViewingState) Update(dt time.Duration) error {
	s.session.Frame(dt)
	s.app.orientation.ApplyTo(s.app.camera, s.app.controls)
	s.app.controls.Update()
	return nil
}

func (s *ViewingState) Render() error {
	s.app.renderer.Render(s.root, s.app.camera, s.app.rig)
	return nil
}

func (s *ViewingState) HandleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventClick:
		w, h := s.app.window.GetSize()
		rect := showroom.Rect{Width: float32(w), Height: float32(h)}
		s.session.HandleClick(float32(ev.MouseX), float32(ev.MouseY), rect, s.app.camera)

	case input.EventDrag:
		_, h := s.app.window.GetSize()
		s.app.controls.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY), h)

	case input.EventWheel:
		s.app.controls.HandleZoom(ev.WheelY)

	case input.EventSensor:
		if a, ok := s.app.gyro.Handle(ev.Sensor, ev.Data, ev.Timestamp); ok {
			s.app.orientation.Update(a)
		}

	case input.EventKeyDown:
		if ev.Key == sdl.SCANCODE_O {
			s.toggleOrientation()
		}
	}
	return nil
}

func (s *ViewingState) toggleOrientation() {
	if s.app.orientation.Active() {
		s.app.orientation.Stop()
		return
	}
	// Failure is reported to the user by the controller
	_ = s.app.orientation.Start(s.app.ctx)
}

// removeSpots returns spots without the members of drop.
func removeSpots(spots, drop []*lighting.SpotLight) []*lighting.SpotLight {
	out := spots[:0]
	for _, l := range spots {
		keep := true
		for _, d := range drop {
			if l == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, l)
		}
	}
	return out
}
