// Package app runs the viewer: window, render loop and the loading and
// viewing states.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/debug"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/orientation"
	"github.com/Faultbox/showroom/internal/engine/renderer"
	"github.com/Faultbox/showroom/internal/engine/window"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/showroom"
	smath "github.com/Faultbox/showroom/pkg/math"
)

// Title is the window title.
const Title = "Showroom"

// ScreenshotDir receives F12 captures.
const ScreenshotDir = "screenshots"

// App is the viewer instance.
type App struct {
	cfg         *config.Config
	sessionOpts showroom.Options
	running     bool

	ctx    context.Context
	cancel context.CancelFunc

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	camera      *camera.Perspective
	controls    *camera.OrbitControls
	rig         *lighting.Rig
	gyro        *orientation.GyroSource
	orientation *orientation.Controller

	states  *Manager
	shots   *debug.Screenshots
	capture bool
}

// New creates the window, the GL renderer and the camera, and queues the
// loading state.
func New(cfg *config.Config) (*App, error) {
	opts, err := sessionOptions(cfg.Interaction)
	if err != nil {
		return nil, fmt.Errorf("interaction settings: %w", err)
	}

	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("model", cfg.Asset.ModelPath),
	)

	a := &App{
		cfg:         cfg,
		sessionOpts: opts,
		input:       input.New(),
		rig:         lighting.DefaultRig(),
		states:      NewManager(),
		shots:       debug.NewScreenshots(ScreenshotDir, "showroom"),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		a.cancel()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// The renderer works in drawable pixels, input in window points
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(rendererConfig(cfg, dw, dh))
	if err != nil {
		a.cancel()
		a.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a.camera, a.controls = newCamera(cfg.Camera, cfg.Graphics.Width, cfg.Graphics.Height)
	a.gyro = orientation.NewGyroSource(cfg.Sensor.Sensitivity)
	a.orientation = orientation.NewController(a.gyro, a.window)

	a.states.Change(NewLoadingState(a, cfg.Asset.ModelPath))

	logger.Info("viewer initialized")
	return a, nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	var minFrame time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			if err := a.handleEvent(ev); err != nil {
				return fmt.Errorf("handling input: %w", err)
			}
		}

		// 2. Update
		if err := a.states.Update(dt); err != nil {
			return fmt.Errorf("update: %w", err)
		}

		// 3. Render and present
		if err := a.states.Render(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if a.capture {
			a.capture = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := a.renderer.Stats()
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Int("draw_calls", st.DrawCalls),
				zap.Int("triangles", st.Triangles),
				zap.Int("bloom", st.Bloom))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if spent := time.Since(now); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}

	return nil
}

// handleEvent processes window level events and forwards the rest to the
// current state.
func (a *App) handleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventWindowResize:
		a.camera.Resize(ev.Width, ev.Height)
		dw, dh := a.window.DrawableSize()
		a.renderer.Resize(dw, dh)
		return nil
	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
			return nil
		case sdl.SCANCODE_F12:
			a.capture = true
			return nil
		}
	}
	return a.states.HandleEvent(ev)
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.shots.Save(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

// Close cancels a pending load and releases everything in reverse order of
// creation.
func (a *App) Close() error {
	logger.Info("closing viewer")
	a.cancel()

	var err error
	err = multierr.Append(err, a.states.Close())
	a.orientation.Stop()
	err = multierr.Append(err, a.gyro.Close())
	err = multierr.Append(err, a.renderer.Close())
	a.window.Close()
	return err
}

// sessionOptions converts the interaction config.
func sessionOptions(c config.InteractionConfig) (showroom.Options, error) {
	rgb, err := c.HazardRGB()
	if err != nil {
		return showroom.Options{}, err
	}
	return showroom.Options{
		DoorOpenDeg:         c.DoorOpenDeg,
		DoorDuration:        c.DoorDuration,
		BlinkPeriod:         c.BlinkPeriod,
		HazardColor:         rgb,
		HazardIntensity:     c.HazardIntensity,
		HeadlightBackOffset: c.HeadlightBackOffset,
		HeadlightReach:      c.HeadlightReach,
	}, nil
}

func rendererConfig(cfg *config.Config, width, height int) renderer.Config {
	return renderer.Config{
		Width:      width,
		Height:     height,
		Samples:    cfg.Graphics.Samples,
		ClearColor: mgl32.Vec3{0, 0, 0},
		Exposure:   1,
		Bloom: renderer.BloomConfig{
			Strength:  cfg.Bloom.Strength,
			Radius:    cfg.Bloom.Radius,
			Threshold: cfg.Bloom.Threshold,
		},
	}
}

// newCamera places the camera at its start position looking at the origin
// until the model arrives.
func newCamera(c config.CameraConfig, width, height int) (*camera.Perspective, *camera.OrbitControls) {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	cam := camera.NewPerspective(c.FOV, aspect, c.Near, c.Far)
	cam.Position = mgl32.Vec3(c.Position)

	controls := camera.NewOrbitControls(cam)
	controls.MinDistance = c.MinDistance
	controls.MaxDistance = c.MaxDistance
	controls.MaxPolar = smath.DegToRad(c.MaxPolarDeg)
	controls.EnableDamping = c.Damping > 0
	controls.DampingFactor = c.Damping
	controls.SetTarget(mgl32.Vec3{})
	return cam, controls
}
